package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	child := WithLogger(logger, "component", "music")
	child.Info("fingerprinting")

	out := buf.String()
	if !strings.Contains(out, "component=music") {
		t.Errorf("child logger missing bound key-values: %q", out)
	}
	if !strings.Contains(out, "fingerprinting") {
		t.Errorf("message missing: %q", out)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatal("debug must be suppressed at the default level")
	}

	SetLogLevel(logger, log.DebugLevel)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug missing after lowering the level: %q", buf.String())
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
	if a == b {
		t.Error("ids must be unique per call")
	}
}
