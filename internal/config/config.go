// Package config loads proglrc's settings from an optional TOML file
// (github.com/BurntSushi/toml) with CLI flags from package pflag taking
// precedence over anything the file sets.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Target names an output code flavor. "go" is the only one proglrc
// currently implements; the field exists so a future flavor can be
// selected without a CLI-surface change.
type Target string

const (
	TargetGo Target = "go"
)

// Config holds every setting proglrc needs beyond the grammar path
// itself, loaded from TOML and then overridden field-by-field by
// whichever pflag flags the user actually passed.
type Config struct {
	// Target selects the emitted code's language flavor.
	Target Target `toml:"target"`

	// Package is the Go package name the emitted parser declares.
	Package string `toml:"package"`

	// OutDir is the directory generated files are written to.
	OutDir string `toml:"out_dir"`

	// DumpAutomaton, if set, additionally writes a Graphviz DOT dump of
	// the built automaton alongside the generated parser.
	DumpAutomaton bool `toml:"dump_automaton"`
}

// Default returns the configuration proglrc uses when no config file is
// given and no flags override it.
func Default() Config {
	return Config{
		Target:  TargetGo,
		Package: "parser",
		OutDir:  ".",
	}
}

// Load reads path as a TOML config file, layered over Default(). A
// missing path is not an error; proglrc simply proceeds with defaults,
// the same "config file is optional" behavior server.go's own startup
// assumes for tqs.toml.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports whether cfg is usable, failing fast before any
// grammar is loaded rather than partway through generation.
func (c Config) Validate() error {
	if c.Target != TargetGo {
		return fmt.Errorf("unsupported target %q: only %q is implemented", c.Target, TargetGo)
	}
	if c.Package == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	return nil
}
