/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mikeb26/boylstonchessclub-roundrobin/roundrobin"
)

// Mode selects what a tournament file asks for once its tables are
// generated.
type Mode string

const (
	ModePlain    Mode = "plain"
	ModeEqualize Mode = "equalize"
	ModeSearch   Mode = "search"
	ModeIdeal    Mode = "ideal"
)

var validModes = map[Mode]bool{
	"": true, ModePlain: true, ModeEqualize: true, ModeSearch: true,
	ModeIdeal: true,
}

// TournamentConfig describes one round-robin event read from YAML.
type TournamentConfig struct {
	Name        string   `yaml:"name"`
	Competitors []string `yaml:"competitors"`
	Method      string   `yaml:"method"`
	Mode        Mode     `yaml:"mode"`

	// Strategy and Offset apply to ModeEqualize.
	Strategy string `yaml:"strategy"`
	Offset   int    `yaml:"offset"`

	// BruteForceBudget and Seed apply to ModeSearch. A nil seed draws
	// from system entropy.
	BruteForceBudget int     `yaml:"brute_force_budget"`
	Seed             *uint64 `yaml:"seed"`

	Width     int      `yaml:"width"`
	Header    bool     `yaml:"header"`
	Highlight []string `yaml:"highlight"`
}

// LoadTournamentConfig reads and parses a YAML tournament file. Unknown keys
// are rejected.
func LoadTournamentConfig(path string) (*TournamentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tournament config: %w", err)
	}

	return ParseTournamentConfig(bytes.NewReader(data))
}

// ParseTournamentConfig decodes a YAML tournament description from r.
func ParseTournamentConfig(r io.Reader) (*TournamentConfig, error) {
	var cfg TournamentConfig
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing tournament config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that all fields in the config are usable.
func (c *TournamentConfig) Validate() error {
	if len(c.Competitors) == 0 {
		return fmt.Errorf("at least one competitor required")
	}
	seen := make(map[string]bool, len(c.Competitors))
	for i, name := range c.Competitors {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("competitors[%d]: name must not be empty", i)
		}
		if strings.EqualFold(name, "BYE") {
			return fmt.Errorf("competitors[%d]: %q is reserved", i, name)
		}
		if seen[name] {
			return fmt.Errorf("competitors[%d]: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	if _, err := c.PairingMethod(); err != nil {
		return err
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("unknown mode %q; valid: plain, equalize, search, ideal",
			c.Mode)
	}
	if c.Mode == ModeEqualize {
		if _, err := roundrobin.ParseStrategy(c.Strategy); err != nil {
			return err
		}
	}
	if c.BruteForceBudget < 0 {
		return fmt.Errorf("brute_force_budget must be non-negative, got %d",
			c.BruteForceBudget)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must be non-negative, got %d", c.Width)
	}
	for i, name := range c.Highlight {
		if !seen[name] {
			return fmt.Errorf("highlight[%d]: %q is not a competitor", i, name)
		}
	}

	return nil
}

// PairingMethod returns the configured method, Berger when unset.
func (c *TournamentConfig) PairingMethod() (roundrobin.Method, error) {
	if c.Method == "" {
		return roundrobin.Berger, nil
	}
	return roundrobin.ParseMethod(c.Method)
}

// Field returns the configured competitors in file order.
func (c *TournamentConfig) Field() []roundrobin.Competitor {
	return roundrobin.NewCompetitors(c.Competitors...)
}

// Highlighted returns the competitors named under highlight.
func (c *TournamentConfig) Highlighted() []roundrobin.Competitor {
	return roundrobin.NewCompetitors(c.Highlight...)
}
