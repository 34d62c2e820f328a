package domain

import (
	"context"

	"github.com/core-tools/hsu-rlimit/pkg/logging"
	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"
)

// contractWriter lets a Contract, local or remote, receive a profile
type contractWriter struct {
	ctx      context.Context
	contract Contract
}

func (w contractWriter) Set(name string, update resourcelimits.Update) error {
	return w.contract.SetLimit(w.ctx, name, update)
}

// ApplyProfile applies every update of profile through contract
func ApplyProfile(ctx context.Context, contract Contract, profile *resourcelimits.Profile, logger logging.Logger) error {
	return resourcelimits.ApplyProfileTo(contractWriter{ctx: ctx, contract: contract}, profile, logger)
}
