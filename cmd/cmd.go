// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		musicCommand, serverCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// musicCommand handles the audio tagging pipeline
func musicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "music",
		Usage: "Identify, tag, and import audio files",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Fingerprint files, confirm metadata, tag, and move into the import directory",
				ArgsUsage: "<file> [file...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Accept resolved metadata without the confirmation dialog",
					},
				},
				Action: r.MusicAdd,
			},
		},
	}
}

// serverCommand handles the remote copy pipeline
func serverCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Copy files to servers from the SSH client config",
		Commands: []*cli.Command{
			{
				Name:      "copy",
				Usage:     "Pick a server and destination, then copy the given paths over SFTP",
				ArgsUsage: "<path> [path...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Server alias to use, skipping the selection dialog",
					},
					&cli.StringFlag{
						Name:    "dest",
						Aliases: []string{"d"},
						Usage:   "Remote destination directory, skipping the input dialog",
					},
				},
				Action: r.ServerCopy,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and runtimes.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config file from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:      "runtime",
				Usage:     "Provision the isolated runtime for a tool",
				ArgsUsage: "<tool>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "dep",
						Usage: "Dependency to install into the runtime (repeatable)",
					},
				},
				Action: r.SetupRuntime,
			},
		},
	}
}
