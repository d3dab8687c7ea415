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
	"regexp"
)

type scanState int

const (
	stateCode scanState = iota
	stateLineComment
	stateBlockComment
	stateSingleQuote
	stateDoubleQuote
	stateTemplate
)

// 🎭 Mask returns a copy of content where comment bodies and string literal
// bodies are blanked with spaces. Offsets and line breaks are preserved, so
// positions found in the mask are valid in the original.
func Mask(content []byte) []byte {
	out := make([]byte, len(content))
	copy(out, content)

	state := stateCode
	for i := 0; i < len(content); i++ {
		c := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch state {
		case stateCode:
			switch {
			case c == '/' && next == '/':
				state = stateLineComment
				blank(out, i)
				blank(out, i+1)
				i++
			case c == '/' && next == '*':
				state = stateBlockComment
				blank(out, i)
				blank(out, i+1)
				i++
			case c == '\'':
				state = stateSingleQuote
			case c == '"':
				state = stateDoubleQuote
			case c == '`':
				state = stateTemplate
			}

		case stateLineComment:
			if c == '\n' {
				state = stateCode
				continue
			}
			blank(out, i)

		case stateBlockComment:
			if c == '*' && next == '/' {
				blank(out, i)
				blank(out, i+1)
				i++
				state = stateCode
				continue
			}
			blank(out, i)

		case stateSingleQuote, stateDoubleQuote, stateTemplate:
			if c == '\\' && i+1 < len(content) {
				blank(out, i)
				blank(out, i+1)
				i++
				continue
			}
			if closesString(state, c) {
				state = stateCode
				continue
			}
			// unterminated quotes end at the line break, templates may span lines
			if c == '\n' && state != stateTemplate {
				state = stateCode
				continue
			}
			blank(out, i)
		}
	}

	return out
}

func closesString(state scanState, c byte) bool {
	switch state {
	case stateSingleQuote:
		return c == '\''
	case stateDoubleQuote:
		return c == '"'
	case stateTemplate:
		return c == '`'
	}
	return false
}

func blank(out []byte, i int) {
	if i >= len(out) {
		return
	}
	if out[i] == '\n' || out[i] == '\r' {
		return
	}
	out[i] = ' '
}

// 🔍 HasDeclaration reports whether `field:` is declared in code, ignoring
// mentions inside comments and string literals.
func HasDeclaration(content []byte, field string) bool {
	return declarationPattern(field).Match(Mask(content))
}

func declarationPattern(field string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\w$.])` + regexp.QuoteMeta(field) + `:`)
}
