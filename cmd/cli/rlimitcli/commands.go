package main

import (
	"context"
	"os"

	rlimitDomain "github.com/core-tools/hsu-rlimit/pkg/domain"
	"github.com/core-tools/hsu-rlimit/pkg/errors"
	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"
)

type resourceArg struct {
	Resource string `positional-arg-name:"resource" required:"yes"`
}

type getCommand struct {
	Args resourceArg `positional-args:"yes" required:"yes"`
}

func (c *getCommand) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		pair, err := a.contract.GetLimit(ctx, c.Args.Resource)
		if err != nil {
			return err
		}
		return writeEntries(os.Stdout, outputFormat(), []resourcelimits.Entry{{Name: c.Args.Resource, Pair: pair}})
	})
}

type setCommand struct {
	Soft string      `long:"soft" description:"new soft limit, a number or \"unlimited\"; kept when omitted"`
	Hard string      `long:"hard" description:"new hard limit, a number or \"unlimited\"; kept when omitted"`
	Args resourceArg `positional-args:"yes" required:"yes"`
}

func (c *setCommand) update() (resourcelimits.Update, error) {
	raw := map[string]interface{}{}
	if c.Soft != "" {
		raw["soft"] = c.Soft
	}
	if c.Hard != "" {
		raw["hard"] = c.Hard
	}
	// Neither flag re-applies the current pair unchanged.
	return resourcelimits.ParseUpdate(raw)
}

func (c *setCommand) Execute(args []string) error {
	update, err := c.update()
	if err != nil {
		return err
	}
	return withApp(func(ctx context.Context, a *app) error {
		if err := a.contract.SetLimit(ctx, c.Args.Resource, update); err != nil {
			return err
		}
		a.logger.Infof("Updated %s: %s", c.Args.Resource, update)
		return nil
	})
}

type listCommand struct{}

func (c *listCommand) Execute(args []string) error {
	return withApp(func(ctx context.Context, a *app) error {
		entries, err := a.contract.ListLimits(ctx)
		if err != nil {
			return err
		}
		return writeEntries(os.Stdout, outputFormat(), entries)
	})
}

type applyCommand struct {
	Args struct {
		Profile string `positional-arg-name:"profile" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

func (c *applyCommand) Execute(args []string) error {
	profile, err := resourcelimits.LoadProfileFromFile(c.Args.Profile)
	if err != nil {
		return err
	}
	return withApp(func(ctx context.Context, a *app) error {
		// The remote platform may know other names, let the server decide.
		if !a.remote() {
			if err := resourcelimits.ValidateProfile(profile); err != nil {
				return err
			}
		}
		return rlimitDomain.ApplyProfile(ctx, a.contract, profile, a.logger)
	})
}

type runCommand struct {
	Profile string   `long:"profile" description:"YAML limits profile to apply before the command starts"`
	Limits  []string `long:"limit" value-name:"NAME=SOFT[:HARD]" description:"limit to apply before the command starts, repeatable"`
	Args    struct {
		Command []string `positional-arg-name:"command" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

// profile merges --profile with the --limit flags, the flags winning
func (c *runCommand) profile() (*resourcelimits.Profile, error) {
	profile := &resourcelimits.Profile{Limits: map[string]resourcelimits.Update{}}
	if c.Profile != "" {
		loaded, err := resourcelimits.LoadProfileFromFile(c.Profile)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}
	for _, flag := range c.Limits {
		name, update, err := parseLimitFlag(flag)
		if err != nil {
			return nil, err
		}
		profile.Limits[name] = update
	}
	return profile, nil
}

func (c *runCommand) Execute(args []string) error {
	if opts.Port != 0 || opts.ServerPath != "" || opts.Attach != "" {
		return errors.NewInvalidArgumentError("run only changes the limits of this process, --port, --server and --attach do not apply", nil)
	}
	profile, err := c.profile()
	if err != nil {
		return err
	}
	if err := resourcelimits.ValidateProfile(profile); err != nil {
		return err
	}
	return withApp(func(ctx context.Context, a *app) error {
		if err := a.manager.ApplyProfile(profile); err != nil {
			return err
		}
		a.logger.Debugf("Executing %v", c.Args.Command)
		return execCommand(c.Args.Command)
	})
}
