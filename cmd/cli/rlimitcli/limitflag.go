package main

import (
	"fmt"
	"strings"

	"github.com/core-tools/hsu-rlimit/pkg/errors"
	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"
)

// parseLimitFlag parses NAME=SOFT[:HARD]. An empty side is left unchanged,
// so "nofile=:4096" only raises the hard limit and "core=0" only the soft one.
func parseLimitFlag(flag string) (string, resourcelimits.Update, error) {
	name, spec, ok := strings.Cut(flag, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", resourcelimits.Update{}, errors.NewInvalidArgumentError(
			fmt.Sprintf("limit %q must look like NAME=SOFT[:HARD]", flag), nil)
	}

	soft, hard, _ := strings.Cut(spec, ":")
	raw := map[string]interface{}{}
	if soft != "" {
		raw["soft"] = soft
	}
	if hard != "" {
		raw["hard"] = hard
	}
	if len(raw) == 0 {
		return "", resourcelimits.Update{}, errors.NewInvalidArgumentError(
			fmt.Sprintf("limit %q sets neither side", flag), nil)
	}

	update, err := resourcelimits.ParseUpdate(raw)
	if err != nil {
		return "", resourcelimits.Update{}, err
	}
	return name, update, nil
}
