package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"quickact/internal/bootstrap"
	"quickact/internal/music"
	"quickact/internal/services"
	"quickact/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	identifier services.Identifier
	catalog    services.Catalog
	pipeline   *music.Pipeline
	boot       *bootstrap.Manager
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	// Dialog seams, replaced by deterministic fakes in tests.
	confirm      music.Confirmer
	selectServer serverSelector
	askDest      destPrompt
	askSecret    secretPrompt
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config        *shared.Config
	Identifier    services.Identifier
	Catalog       services.Catalog
	Fingerprinter music.Fingerprinter
	Tagger        music.Tagger
	Installer     bootstrap.Installer
	HTTPClient    *http.Client
	Logger        *log.Logger
	Output        io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Identifier == nil {
		opts.Identifier = services.NewAcoustIDService(
			opts.Config.Lookup.AcoustIDURL, opts.Config.Lookup.APIKeyEnv, opts.HTTPClient)
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewMusicBrainzService(
			opts.Config.Lookup.MusicBrainzURL, opts.Config.Lookup.UserAgent, opts.HTTPClient)
	}
	if opts.Installer == nil {
		opts.Installer = bootstrap.VenvInstaller{Interpreter: opts.Config.Runtime.Interpreter}
	}

	pipeline := music.NewPipeline(music.PipelineOpts{
		Fingerprinter: opts.Fingerprinter,
		Identifier:    opts.Identifier,
		Catalog:       opts.Catalog,
		Tagger:        opts.Tagger,
		ImportDir:     opts.Config.Paths.ImportDir,
		MinConfidence: opts.Config.Lookup.MinConfidence,
		Logger:        shared.WithLogger(opts.Logger, "component", "music"),
	})

	r := &Runner{
		config:     opts.Config,
		identifier: opts.Identifier,
		catalog:    opts.Catalog,
		pipeline:   pipeline,
		boot:       bootstrap.NewManager(opts.Config.Runtime.Root, opts.Installer, shared.WithLogger(opts.Logger, "component", "bootstrap")),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	r.confirm = r.confirmDialog
	r.selectServer = r.serverDialog
	r.askDest = r.destDialog
	r.askSecret = r.secretDialog
	return r
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
