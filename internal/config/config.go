/*
 * tenbit - Configuration file
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package config loads the assembler's TOML configuration file: whether to
// keep the macro-expanded intermediate, how many errors to tolerate before
// a pass stops reporting them, an output directory setting, and logging
// destination.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Assembler holds the [assembler] table.
type Assembler struct {
	KeepIntermediate  bool `toml:"keep_intermediate"`
	MaxErrors         int  `toml:"max_errors"`
	WordOverflowFatal bool `toml:"word_overflow_fatal"`
}

// Output holds the [output] table. Directory is decoded but not consulted
// by the assembler: output files are always written next to the input file.
type Output struct {
	Directory string `toml:"directory"`
}

// Log holds the [log] table.
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Config is the assembler's full configuration.
type Config struct {
	Assembler Assembler `toml:"assembler"`
	Output    Output    `toml:"output"`
	Log       Log       `toml:"log"`
}

// Default returns the configuration used when no -config flag is given.
func Default() Config {
	return Config{
		Assembler: Assembler{KeepIntermediate: true},
		Log:       Log{Level: "info"},
	}
}

// Load reads and decodes the TOML file at path, starting from Default() so
// a file may specify only the keys it wants to override. An unrecognized
// key in the file is a load error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key(s): %v", path, undecoded)
	}
	return cfg, nil
}
