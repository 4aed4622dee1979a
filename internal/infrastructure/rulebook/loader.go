// Package rulebook supplies the triage engine's red-flag rules and
// guidance templates. The YAML assets are compiled into the binary; an
// optional override directory lets pilots adjust wording without a rebuild.
package rulebook

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sahay-inc/sahay/internal/domain/triage"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

//go:embed assets/rulebook.yaml assets/guidance.yaml
var assets embed.FS

type Loader struct {
	overridePath string
	logger       logger.Interface
}

// NewLoader creates a loader. overridePath may be empty, in which case only
// the embedded assets are used.
func NewLoader(overridePath string, log logger.Interface) *Loader {
	return &Loader{
		overridePath: overridePath,
		logger:       log.Named("rulebook"),
	}
}

// LoadRulebook parses and compiles the red-flag rulebook.
func (l *Loader) LoadRulebook() (*triage.Rulebook, error) {
	data, source, err := l.read("rulebook.yaml")
	if err != nil {
		return nil, err
	}

	rb, err := triage.ParseRulebook(data)
	if err != nil {
		return nil, fmt.Errorf("invalid rulebook (%s): %w", source, err)
	}

	l.logger.Infow("triage rulebook loaded", "source", source, "rules", rb.Len())
	return rb, nil
}

// LoadTemplates parses and validates the guidance template set.
func (l *Loader) LoadTemplates() (*triage.TemplateSet, error) {
	data, source, err := l.read("guidance.yaml")
	if err != nil {
		return nil, err
	}

	ts, err := triage.ParseTemplates(data)
	if err != nil {
		return nil, fmt.Errorf("invalid guidance templates (%s): %w", source, err)
	}

	l.logger.Infow("guidance templates loaded", "source", source)
	return ts, nil
}

// read prefers the override directory and falls back to the embedded copy.
func (l *Loader) read(name string) ([]byte, string, error) {
	if l.overridePath != "" {
		overrideFile := filepath.Join(l.overridePath, name)
		data, err := os.ReadFile(overrideFile)
		if err == nil {
			return data, overrideFile, nil
		}
		if !os.IsNotExist(err) {
			l.logger.Warnw("failed to read override file, using embedded copy",
				"file", overrideFile,
				"error", err)
		}
	}

	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read embedded asset %s: %w", name, err)
	}
	return data, "embedded", nil
}
