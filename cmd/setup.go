package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"quickact/internal/shared"
	"quickact/internal/ui"
)

// SetupConfig writes a config file from the embedded template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	r.logger.Info("config file created", "path", configPath)

	r.writePlain("%s\n", ui.Success("config written to %s", configPath))
	r.writePlain("Edit it to point at your import directory and SSH config.\n")
	return nil
}

// SetupRuntime provisions the isolated runtime for a tool. Running it
// again is a no-op once the runtime is complete.
func (r *Runner) SetupRuntime(ctx context.Context, cmd *cli.Command) error {
	tool := cmd.Args().First()
	if tool == "" {
		return fmt.Errorf("%w: a tool name is required", shared.ErrMissingArgument)
	}

	env, err := r.boot.Ensure(ctx, tool, cmd.StringSlice("dep"))
	if err != nil {
		return err
	}

	r.writePlain("%s\n", ui.Success("runtime for %s ready at %s", env.Tool, env.Path))
	if len(env.Dependencies) > 0 {
		r.writePlain("installed: %v\n", env.Dependencies)
	}
	return nil
}
