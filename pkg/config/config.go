// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 📁 Fixed run settings. Changing any of these means rebuilding the tool.
const (
	DefaultRoot      = "src/lib/models/locked"
	DefaultExtension = ".ts"
	DefaultField     = "use_api_key"
	DefaultAnchor    = "contentType"
)

// 🚫 DefaultExclude lists utility files that live next to the models but are not models
var DefaultExclude = []string{
	"index.ts",
	"getKieApiKey.ts",
	"getRunwareApiKey.ts",
	"ModelFileGenerator.ts",
}

// 🔄 Rewrite represents a literal rewrite applied alongside the inserted field
type Rewrite struct {
	Old  string // Exact text to replace
	New  string // Replacement text
	Glob string // Doublestar pattern of files the rewrite applies to
}

// 📚 Config represents the complete run configuration
type Config struct {
	Root      string    // Directory scanned for model files
	Extension string    // Candidate file extension, including the dot
	Exclude   []string  // Base names skipped during the walk
	Field     string    // Field inserted into each model
	Anchor    string    // Field whose declaration the new field follows
	Rewrites  []Rewrite // Call-site rewrites applied with the insertion
}

// 🎯 Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Root:      DefaultRoot,
		Extension: DefaultExtension,
		Exclude:   append([]string(nil), DefaultExclude...),
		Field:     DefaultField,
		Anchor:    DefaultAnchor,
		Rewrites: []Rewrite{
			{
				Old:  "MODEL_CONFIG." + DefaultAnchor + ")",
				New:  "MODEL_CONFIG." + DefaultField + ")",
				Glob: "**/*" + DefaultExtension,
			},
		},
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.Errorf("root is required")
	}
	if cfg.Extension == "" {
		return errors.Errorf("extension is required")
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		return errors.Errorf("extension %q must start with a dot", cfg.Extension)
	}
	if cfg.Field == "" {
		return errors.Errorf("field is required")
	}
	if cfg.Anchor == "" {
		return errors.Errorf("anchor is required")
	}
	if cfg.Field == cfg.Anchor {
		return errors.Errorf("field and anchor must differ, both are %q", cfg.Field)
	}

	for i, r := range cfg.Rewrites {
		if r.Old == "" {
			return errors.Errorf("rewrite %d: old text is required", i)
		}
		if r.Glob == "" {
			return errors.Errorf("rewrite %d: glob is required", i)
		}
		if !doublestar.ValidatePattern(r.Glob) {
			return errors.Errorf("rewrite %d: invalid glob %q", i, r.Glob)
		}
	}

	cfg.Root = filepath.Clean(cfg.Root)

	return nil
}

// 🚫 IsExcluded reports whether a file base name is on the exclude list
func (cfg *Config) IsExcluded(name string) bool {
	for _, ex := range cfg.Exclude {
		if ex == name {
			return true
		}
	}
	return false
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s/**/*%s (%s after %s, %d excluded)", cfg.Root, cfg.Extension, cfg.Field, cfg.Anchor, len(cfg.Exclude))
}
