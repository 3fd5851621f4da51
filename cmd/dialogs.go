package main

import (
	"context"
	"fmt"

	"quickact/internal/models"
	"quickact/internal/services"
	"quickact/internal/shared"
	"quickact/internal/ui"
)

type serverSelector func(entries []models.ServerEntry) (models.ServerEntry, error)

type destPrompt func(ctx context.Context, initial string, suggest ui.SuggestFunc, fallback []string) (string, error)

type secretPrompt func(title string) (string, error)

// confirmDialog shows the editable metadata form for one file. When the
// catalog supports text search, edited fields can be re-resolved in place.
func (r *Runner) confirmDialog(ctx context.Context, match models.AudioMatch, filename string) (models.Metadata, bool, error) {
	var retry ui.RetryFunc
	if searcher, ok := r.catalog.(services.Searcher); ok {
		retry = searcher.SearchRecording
	}

	dialog := ui.NewMetadataConfirm(ctx, match, filename, retry)
	if err := ui.Run(dialog); err != nil {
		return models.Metadata{}, false, err
	}
	meta, ok := dialog.Result()
	return meta, ok, nil
}

// serverDialog lists the selectable hosts and returns the chosen one.
func (r *Runner) serverDialog(entries []models.ServerEntry) (models.ServerEntry, error) {
	dialog := ui.NewServerSelect("Copy to which server?", entries)
	if err := ui.Run(dialog); err != nil {
		return models.ServerEntry{}, err
	}
	choice := dialog.Choice()
	if choice < 0 {
		return models.ServerEntry{}, fmt.Errorf("%w: no server selected", shared.ErrCancelled)
	}
	return entries[choice], nil
}

// destDialog prompts for the remote destination with live completion.
func (r *Runner) destDialog(ctx context.Context, initial string, suggest ui.SuggestFunc, fallback []string) (string, error) {
	dialog := ui.NewPathInput(ctx, "Destination directory", initial, suggest, fallback)
	if err := ui.Run(dialog); err != nil {
		return "", err
	}
	if dialog.Cancelled() {
		return "", fmt.Errorf("%w: no destination entered", shared.ErrCancelled)
	}
	return dialog.Value(), nil
}

// secretDialog prompts for a credential with masked echo.
func (r *Runner) secretDialog(title string) (string, error) {
	dialog := ui.NewSecretInput(title)
	if err := ui.Run(dialog); err != nil {
		return "", err
	}
	if dialog.Cancelled() {
		return "", fmt.Errorf("%w: no credential entered", shared.ErrCancelled)
	}
	return dialog.Value(), nil
}
