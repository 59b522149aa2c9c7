// Package config loads engine tunables from an optional TOML file using
// github.com/BurntSushi/toml.
package config

import (
	"github.com/BurntSushi/toml"
)

// Config holds every tunable the search and engine packages read at
// startup. Zero-value Config is not valid; use Default to get sane
// settings before overlaying a file.
type Config struct {
	Workers int `toml:"workers"`

	TTSizeMB int `toml:"tt_size_mb"`

	// AspirationWindows lists the widening schedule used by search's
	// iterative deepening loop, in centipawns. search.ParamsFromConfig
	// appends a final "infinite" entry (a full-width re-search), so the
	// default {10, 50, 250} becomes {10, 50, 250, infinite}.
	AspirationWindows []int `toml:"aspiration_windows_cp"`

	NullMoveMinDepth int `toml:"null_move_min_depth"`
	NullMoveReduction int `toml:"null_move_reduction"`

	DeltaPruningMargin int `toml:"delta_pruning_margin_cp"`

	NetPath string `toml:"net_path"`
}

// Default returns the engine's built-in defaults, used whenever no TOML
// file is supplied or a file omits a field.
func Default() Config {
	return Config{
		Workers:            4,
		TTSizeMB:           64,
		AspirationWindows:  []int{10, 50, 250},
		NullMoveMinDepth:   3,
		NullMoveReduction:  2,
		DeltaPruningMargin: 200,
		NetPath:            "",
	}
}

// Load reads path as TOML and overlays it onto Default(); fields absent
// from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
