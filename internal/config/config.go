// Package config loads reconciliation scenarios from YAML.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rawbytedev/chunkdiff"
)

// Diff modes.
const (
	ModePositional = "positional"
	ModeKeyed      = "keyed"
)

var ErrInvalid = errors.New("invalid scenario")

// Scenario is a reconcile.yaml file. All fields except trusted and
// candidate are optional; CLI flags override them.
type Scenario struct {
	Mode      string          `yaml:"mode"`
	LogLevel  string          `yaml:"log_level"`
	Frame     FrameConfig     `yaml:"frame"`
	Trusted   []ComponentSpec `yaml:"trusted"`
	Candidate []ComponentSpec `yaml:"candidate"`
}

// FrameConfig controls how the correction is written when --frame is set.
type FrameConfig struct {
	Compress bool `yaml:"compress"`
}

// ComponentSpec is one component, e.g. {kind: health, value: 30}.
type ComponentSpec struct {
	Kind  string `yaml:"kind"`
	Value int64  `yaml:"value"`
}

// KindByName resolves a case-insensitive kind name.
func KindByName(name string) (chunkdiff.Kind, error) {
	for _, k := range chunkdiff.Kinds() {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", chunkdiff.ErrUnknownKind, name)
}

// Component builds the typed component described by s.
func (s ComponentSpec) Component() (chunkdiff.Component, error) {
	k, err := KindByName(s.Kind)
	if err != nil {
		return nil, err
	}
	return chunkdiff.New(k, s.Value)
}

func components(specs []ComponentSpec) ([]chunkdiff.Component, error) {
	out := make([]chunkdiff.Component, 0, len(specs))
	for i, s := range specs {
		c, err := s.Component()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Components returns the trusted and candidate sets.
func (s *Scenario) Components() (trusted, candidate []chunkdiff.Component, err error) {
	if trusted, err = components(s.Trusted); err != nil {
		return nil, nil, fmt.Errorf("trusted %w", err)
	}
	if candidate, err = components(s.Candidate); err != nil {
		return nil, nil, fmt.Errorf("candidate %w", err)
	}
	return trusted, candidate, nil
}

// Validate checks mode and component kinds.
func (s *Scenario) Validate() error {
	switch s.Mode {
	case "", ModePositional, ModeKeyed:
	default:
		return fmt.Errorf("%w: mode %q (must be %s or %s)", ErrInvalid, s.Mode, ModePositional, ModeKeyed)
	}
	if _, _, err := s.Components(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Default is the built-in demo: the client reports the wrong health.
func Default() *Scenario {
	return &Scenario{
		Mode: ModePositional,
		Trusted: []ComponentSpec{
			{Kind: "health", Value: 30},
			{Kind: "stamina", Value: 90},
		},
		Candidate: []ComponentSpec{
			{Kind: "health", Value: 88},
			{Kind: "stamina", Value: 90},
		},
	}
}
