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

// Package model reads the handful of fields keystamp needs out of a model file.
package model

import (
	"regexp"
)

// 🏷️ Field names read from model files
const (
	FieldProvider    = "provider"
	FieldContentType = "contentType"
	FieldRecordID    = "recordId"
)

var (
	// provider values are identifiers; the other two allow any quote-free text
	providerField    = newField(FieldProvider, `\w+`)
	contentTypeField = newField(FieldContentType, `[^"'\r\n]+`)
	recordIDField    = newField(FieldRecordID, `[^"'\r\n]+`)
)

// field locates `name: "value"` or `name: 'value'` in masked content, where
// string bodies are blank, and checks the raw value against value.
type field struct {
	pattern *regexp.Regexp // group 1 double quoted, group 2 single quoted
	value   *regexp.Regexp
}

func newField(name, value string) field {
	return field{
		pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `:\s*(?:"([^"\r\n]+)"|'([^'\r\n]+)')`),
		value:   regexp.MustCompile(`^(?:` + value + `)$`),
	}
}

// 📄 Fields holds the optional values extracted from a model file.
// A nil pointer means the field was not found.
type Fields struct {
	Provider    *string
	ContentType *string
	RecordID    *string
}

// 🔍 Extract pulls provider, contentType and recordId out of file content.
// Only the first occurrence of each field in code counts; mentions inside
// comments and string literals are ignored.
func Extract(content []byte) Fields {
	masked := Mask(content)
	return Fields{
		Provider:    providerField.first(content, masked),
		ContentType: contentTypeField.first(content, masked),
		RecordID:    recordIDField.first(content, masked),
	}
}

// ✅ Eligible reports whether both provider and contentType are present
func (f Fields) Eligible() bool {
	return f.Provider != nil && f.ContentType != nil
}

// 📝 Value returns the field value or "" when absent
func Value(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func (f field) first(content, masked []byte) *string {
	for _, m := range f.pattern.FindAllSubmatchIndex(masked, -1) {
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[4], m[5]
		}
		v := string(content[start:end])
		if f.value.MatchString(v) {
			return &v
		}
	}
	return nil
}
