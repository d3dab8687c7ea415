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

package text

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/keystamp/pkg/config"
)

func TestSimpleTextReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []ReplacementRule
		want         string
		wantCount    int
		wantError    string
		wantModified bool
	}{
		{
			name:    "simple_replacement",
			content: "Hello World",
			rules: []ReplacementRule{
				{FromText: "World", ToText: "Universe"},
			},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "multiple_replacements",
			content: "Hello World World",
			rules: []ReplacementRule{
				{FromText: "World", ToText: "Universe"},
			},
			want:         "Hello Universe Universe",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "multiple_rules",
			content: "Hello World",
			rules: []ReplacementRule{
				{FromText: "Hello", ToText: "Hi"},
				{FromText: "World", ToText: "Universe"},
			},
			want:         "Hi Universe",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "no_match",
			content: "Hello World",
			rules: []ReplacementRule{
				{FromText: "Goodbye", ToText: "Hi"},
			},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "empty_content",
			content: "",
			rules: []ReplacementRule{
				{FromText: "World", ToText: "Universe"},
			},
			want:         "",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "model_config_call_site",
			content: "const key = getKieApiKey(MODEL_CONFIG.contentType);\nconst other = MODEL_CONFIG.contentType;",
			rules: []ReplacementRule{
				{FromText: "MODEL_CONFIG.contentType)", ToText: "MODEL_CONFIG.use_api_key)"},
			},
			want:         "const key = getKieApiKey(MODEL_CONFIG.use_api_key);\nconst other = MODEL_CONFIG.contentType;",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "empty_from_text_is_ignored",
			content: "Hello World",
			rules: []ReplacementRule{
				{FromText: "", ToText: "x"},
			},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_rules",
			content:      "Hello World",
			rules:        []ReplacementRule{},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewSimpleTextReplacer()
			result, err := replacer.ReplaceText(
				context.Background(),
				strings.NewReader(tt.content),
				tt.rules,
			)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestSimpleTextReplacer_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []ReplacementRule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: []ReplacementRule{
				{
					FromText:       "foo",
					ToText:         "bar",
					FileFilterGlob: "*.txt",
				},
			},
		},
		{
			name: "missing_from_text",
			rules: []ReplacementRule{
				{
					ToText:         "bar",
					FileFilterGlob: "*.txt",
				},
			},
			wantError: "from_text is required",
		},
		{
			name: "missing_file_filter",
			rules: []ReplacementRule{
				{
					FromText: "foo",
					ToText:   "bar",
				},
			},
			wantError: "file_filter_glob is required",
		},
		{
			name: "invalid_glob",
			rules: []ReplacementRule{
				{
					FromText:       "foo",
					ToText:         "bar",
					FileFilterGlob: "[*.ts",
				},
			},
			wantError: "is not a valid pattern",
		},
		{
			name:  "empty_rules",
			rules: []ReplacementRule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewSimpleTextReplacer()
			err := replacer.ValidateRules(tt.rules)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestReplacementRule_Applies(t *testing.T) {
	tests := []struct {
		name string
		glob string
		path string
		want bool
	}{
		{name: "nested_match", glob: "**/*.ts", path: "src/lib/models/locked/kie/veo3.ts", want: true},
		{name: "top_level_match", glob: "**/*.ts", path: "veo3.ts", want: true},
		{name: "other_extension", glob: "**/*.ts", path: "src/lib/models/locked/README.md", want: false},
		{name: "empty_glob_matches_all", glob: "", path: "anything.txt", want: true},
		{name: "bad_glob_matches_nothing", glob: "[*.ts", path: "veo3.ts", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := ReplacementRule{FromText: "a", ToText: "b", FileFilterGlob: tt.glob}
			assert.Equal(t, tt.want, rule.Applies(tt.path))
		})
	}
}

func TestRulesFromConfig(t *testing.T) {
	rules := RulesFromConfig(config.Default().Rewrites)
	require.Len(t, rules, 1)
	assert.Equal(t, ReplacementRule{
		FromText:       "MODEL_CONFIG.contentType)",
		ToText:         "MODEL_CONFIG.use_api_key)",
		FileFilterGlob: "**/*.ts",
	}, rules[0])
	assert.NoError(t, NewSimpleTextReplacer().ValidateRules(rules))
}
