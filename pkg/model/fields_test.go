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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		want         Fields
		wantEligible bool
	}{
		{
			name: "double_quotes",
			content: `export const MODEL_CONFIG = {
  provider: "kie_ai",
  contentType: "image_editing",
};`,
			want:         Fields{Provider: ptr("kie_ai"), ContentType: ptr("image_editing")},
			wantEligible: true,
		},
		{
			name: "single_quotes",
			content: `export const MODEL_CONFIG = {
  recordId: '8aac94cb-5625-47f4-880c-4f0fd8bd83a1',
  provider: 'kie_ai',
  contentType: 'prompt_to_video',
};`,
			want: Fields{
				Provider:    ptr("kie_ai"),
				ContentType: ptr("prompt_to_video"),
				RecordID:    ptr("8aac94cb-5625-47f4-880c-4f0fd8bd83a1"),
			},
			wantEligible: true,
		},
		{
			name:         "whitespace_after_colon",
			content:      "provider:\t  \"runware\",\ncontentType:\n\"image_to_video\",",
			want:         Fields{Provider: ptr("runware"), ContentType: ptr("image_to_video")},
			wantEligible: true,
		},
		{
			name:         "first_match_wins",
			content:      "provider: \"kie_ai\",\ncontentType: \"image_editing\",\nprovider: \"runware\",\ncontentType: \"prompt_to_image\",",
			want:         Fields{Provider: ptr("kie_ai"), ContentType: ptr("image_editing")},
			wantEligible: true,
		},
		{
			name:    "missing_content_type",
			content: `provider: "kie_ai",`,
			want:    Fields{Provider: ptr("kie_ai")},
		},
		{
			name:    "missing_provider",
			content: `contentType: "image_editing",`,
			want:    Fields{ContentType: ptr("image_editing")},
		},
		{
			name:    "empty_file",
			content: "",
			want:    Fields{},
		},
		{
			name:    "mismatched_quotes_are_not_values",
			content: `provider: "kie_ai', contentType: 'image_editing"`,
			want:    Fields{},
		},
		{
			name:    "provider_must_be_a_word",
			content: `provider: "kie-ai", contentType: "image_editing"`,
			want:    Fields{ContentType: ptr("image_editing")},
		},
		{
			name:    "prefixed_names_do_not_match",
			content: `default_provider: "kie_ai", mediaContentType: "x"`,
			want:    Fields{},
		},
		{
			name:    "empty_values_are_absent",
			content: `provider: "", contentType: ""`,
			want:    Fields{},
		},
		{
			name:         "content_type_with_spaces",
			content:      `provider: "kie_ai", contentType: "image editing"`,
			want:         Fields{Provider: ptr("kie_ai"), ContentType: ptr("image editing")},
			wantEligible: true,
		},
		{
			name: "commented_out_fields_are_ignored",
			content: `export const MODEL_CONFIG = {
  // provider: "runware",
  /* contentType: "old", */
  provider: "kie_ai",
  contentType: "image_editing",
};`,
			want:         Fields{Provider: ptr("kie_ai"), ContentType: ptr("image_editing")},
			wantEligible: true,
		},
		{
			name:    "fields_inside_strings_are_ignored",
			content: "const doc = \"provider: 'kie_ai', contentType: 'image_editing'\";\nconst tpl = `recordId: \"x\"`;",
			want:    Fields{},
		},
		{
			name:    "invalid_first_value_falls_through_to_next",
			content: "provider: \"kie-ai\",\nprovider: \"runware\",",
			want:    Fields{Provider: ptr("runware")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract([]byte(tt.content))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantEligible, got.Eligible())
		})
	}
}

func TestValue(t *testing.T) {
	assert.Equal(t, "", Value(nil))
	assert.Equal(t, "kie_ai", Value(ptr("kie_ai")))
}
