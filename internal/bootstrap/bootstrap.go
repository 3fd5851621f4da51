// Package bootstrap provisions isolated per-tool script runtimes.
//
// Each tool gets a deterministic directory under the configured runtime
// root. The first invocation builds the runtime and installs the tool's
// declared dependencies; later invocations see the completed manifest and
// do nothing. Builds happen in a staging directory that is renamed into
// place, so a crashed first run never leaves a half-built runtime at the
// deterministic path and repeating the bootstrap is always safe.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"quickact/internal/models"
	"quickact/internal/shared"
)

const manifestName = "manifest.toml"

// manifest records what a completed runtime contains.
type manifest struct {
	Tool         string   `toml:"tool"`
	Dependencies []string `toml:"dependencies"`
}

// Installer builds a runtime directory and installs dependencies into it.
type Installer interface {
	// Install creates the runtime at dir and installs deps into it.
	// dir does not exist when Install is called.
	Install(ctx context.Context, dir string, deps []string) error
}

// Manager ensures tool runtimes exist before pipeline logic runs.
type Manager struct {
	root      string
	installer Installer
	logger    *log.Logger
}

// NewManager creates a Manager rooted at the configured runtime root.
func NewManager(root string, installer Installer, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{root: root, installer: installer, logger: logger}
}

// Ensure guarantees the tool's runtime exists with its dependencies
// installed. Idempotent: a second call for the same tool installs nothing.
func (m *Manager) Ensure(ctx context.Context, tool string, deps []string) (*models.ToolEnvironment, error) {
	path := models.EnvironmentPath(m.root, tool)
	env := &models.ToolEnvironment{Tool: tool, Path: path, Dependencies: deps}

	if m.complete(path) {
		m.logger.Debug("runtime already provisioned", "tool", tool, "path", path)
		return env, nil
	}

	m.logger.Info("provisioning runtime", "tool", tool, "path", path)

	if err := os.MkdirAll(m.root, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrBootstrapFailed, err)
	}

	// Build in a staging dir, then rename. If another invocation won the
	// race and the deterministic path exists by the time we finish, keep
	// theirs and discard ours.
	staging := filepath.Join(m.root, fmt.Sprintf(".%s-%s", tool, shared.GenerateID()))
	defer os.RemoveAll(staging)

	if err := m.installer.Install(ctx, staging, deps); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrBootstrapFailed, err)
	}

	if err := writeManifest(staging, manifest{Tool: tool, Dependencies: deps}); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrBootstrapFailed, err)
	}

	if err := os.Rename(staging, path); err != nil {
		if m.complete(path) {
			return env, nil
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrBootstrapFailed, err)
	}

	return env, nil
}

// complete reports whether a finished runtime exists at path.
// A directory without a manifest is treated as absent.
func (m *Manager) complete(path string) bool {
	var mf manifest
	if _, err := toml.DecodeFile(filepath.Join(path, manifestName), &mf); err != nil {
		return false
	}
	return mf.Tool != ""
}

func writeManifest(dir string, mf manifest) error {
	f, err := os.Create(filepath.Join(dir, manifestName))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(mf)
}

// VenvInstaller builds Python virtual environments with an interpreter,
// matching how the original workflow scripts provision themselves.
type VenvInstaller struct {
	Interpreter string // e.g. "python3"
}

// Install creates a venv at dir and pip-installs deps into it.
func (v VenvInstaller) Install(ctx context.Context, dir string, deps []string) error {
	interpreter := v.Interpreter
	if interpreter == "" {
		interpreter = "python3"
	}

	cmd := exec.CommandContext(ctx, interpreter, "-m", "venv", dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("venv creation failed: %v: %s", err, out)
	}

	if len(deps) == 0 {
		return nil
	}

	pip := filepath.Join(dir, "bin", "pip")
	args := append([]string{"install", "--quiet"}, deps...)
	cmd = exec.CommandContext(ctx, pip, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("dependency install failed: %v: %s", err, out)
	}

	return nil
}
