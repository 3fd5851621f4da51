package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"quickact/internal/models"
	"quickact/internal/remote"
	"quickact/internal/services"
	"quickact/internal/shared"
	"quickact/internal/sshconf"
	"quickact/internal/ui"
)

// ServerCopy walks the remote copy pipeline: parse the SSH config, pick a
// server, resolve auth, choose a destination, then copy every path.
func (r *Runner) ServerCopy(ctx context.Context, cmd *cli.Command) error {
	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		return fmt.Errorf("%w: at least one path is required", shared.ErrMissingArgument)
	}

	entries, err := sshconf.Parse(r.config.Paths.SSHConfig)
	if err != nil {
		return err
	}
	selectable := sshconf.Selectable(entries)
	if len(selectable) == 0 {
		return fmt.Errorf("%w: %s", shared.ErrNoServers, r.config.Paths.SSHConfig)
	}

	server, err := r.resolveServer(cmd.String("host"), selectable)
	if err != nil {
		return err
	}
	r.logger.Info("server selected", "alias", server.Alias, "host", server.Addr())

	task := models.TransferTask{Sources: sources, Server: server, CreateDest: true}

	auth, err := remote.KeyAuth(server.IdentityFile)
	if err != nil {
		if !remote.NeedsPassword(err) {
			return err
		}
		password, err := r.askSecret(fmt.Sprintf("Password for %s", server.Alias))
		if err != nil {
			return err
		}
		auth = remote.PasswordAuth(password)
		task.Auth = models.AuthPassword
		task.Password = password
	}
	r.logger.Info("authenticating", "mode", task.Auth)

	client, err := remote.Dial(remote.DialOptions{
		Entry:   server,
		Auth:    auth,
		Timeout: time.Duration(r.config.Transfer.ConnectTimeoutSecs) * time.Second,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	dest := cmd.String("dest")
	if dest == "" {
		if dest, err = r.promptDestination(ctx, client, client.Expand); err != nil {
			return err
		}
	}
	if task.Destination, err = client.Expand(dest); err != nil {
		return err
	}

	r.logger.Info("copying", "items", len(sources), "dest", task.Destination)
	results, err := remote.Transfer(ctx, client.FS(), task)

	for _, item := range results {
		if item.Err != nil {
			r.writePlain("%s\n", ui.Failure("%s: %v", item.Source, item.Err))
			continue
		}
		r.writePlain("%s\n", ui.Success("%s → %s:%s", item.Source, server.Alias, item.Dest))
	}
	return err
}

// resolveServer honors an explicit --host alias, falling back to the
// selection dialog.
func (r *Runner) resolveServer(host string, selectable []models.ServerEntry) (models.ServerEntry, error) {
	if host == "" {
		return r.selectServer(selectable)
	}
	for _, e := range selectable {
		if e.Alias == host {
			return e, nil
		}
	}
	return models.ServerEntry{}, fmt.Errorf("%w: no host %q in the SSH config", shared.ErrNoServers, host)
}

// promptDestination asks for the remote directory, completing against the
// remote listing and degrading to the configured static defaults.
func (r *Runner) promptDestination(ctx context.Context, lister services.DirLister, expand func(string) (string, error)) (string, error) {
	fallback := r.config.Transfer.DefaultDests
	initial := "~/"
	if len(fallback) > 0 {
		initial = fallback[0]
	}

	suggest := ui.SuggestFunc(func(ctx context.Context, dir string) ([]string, error) {
		expanded, err := expand(dir)
		if err != nil {
			return nil, err
		}
		return lister.ListDir(ctx, expanded)
	})

	return r.askDest(ctx, initial, suggest, fallback)
}
