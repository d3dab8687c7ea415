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

// Package patch inserts the key declaration into model file text.
package patch

import (
	"bytes"
	"context"
	"regexp"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/keystamp/pkg/config"
	"github.com/walteh/keystamp/pkg/model"
	"github.com/walteh/keystamp/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrNoAnchor is returned when the anchor declaration is missing
var ErrNoAnchor = errors.Base("anchor declaration not found")

// 🩹 Patcher inserts a field declaration after an anchor declaration and
// applies the configured call-site rewrites
type Patcher struct {
	field    string
	anchor   string
	rules    []text.ReplacementRule
	replacer text.TextReplacer

	anchorPattern *regexp.Regexp
	reviewPattern *regexp.Regexp
}

// 🏭 New creates a Patcher from the run configuration
func New(cfg *config.Config) (*Patcher, error) {
	if cfg == nil {
		return nil, errors.Errorf("config is required")
	}

	replacer := text.NewSimpleTextReplacer()
	rules := text.RulesFromConfig(cfg.Rewrites)
	if err := replacer.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rewrites: %w", err)
	}

	anchor := regexp.QuoteMeta(cfg.Anchor)

	return &Patcher{
		field:    cfg.Field,
		anchor:   cfg.Anchor,
		rules:    rules,
		replacer: replacer,
		// matched against masked content: groups 1 and 2 are the quoted body,
		// an `as T` or `satisfies T` suffix belongs to the anchor, group 3 is
		// the trailing separator
		anchorPattern: regexp.MustCompile(`\b` + anchor + `:\s*(?:"([^"\r\n]+)"|'([^'\r\n]+)')` +
			`(?:[ \t]+(?:as|satisfies)[ \t]+[A-Za-z_$][\w$.]*(?:\[\])*)?` +
			`(?:[ \t]*(,))?`),
		reviewPattern: regexp.MustCompile(`\.` + anchor + `\b`),
	}, nil
}

// 📊 Stats counts the runes a patch added and removed
type Stats struct {
	Inserted int
	Deleted  int
}

// 📄 Result describes a patched file
type Result struct {
	Content  []byte // Patched content
	Line     int    // 1-based line holding the new declaration
	Rewrites int    // Call-site rewrites applied
	Review   []int  // 1-based lines that still reference the anchor through member access
	Stats    Stats
}

type insertion struct {
	at   int
	text string
}

// 🎯 Apply inserts `field: "value"` after the first anchor declaration in
// content. Only the declaration and the configured rewrites change; every
// other byte is kept.
func (p *Patcher) Apply(ctx context.Context, path string, content []byte, value string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	m := p.findAnchor(content)
	if m == nil {
		return nil, errors.Errorf("%w: %s in %s", ErrNoAnchor, p.anchor, path)
	}

	edits, line := p.plan(content, m, value)

	patched := make([]byte, 0, len(content)+len(value)+len(p.field)+16)
	prev := 0
	for _, e := range edits {
		patched = append(patched, content[prev:e.at]...)
		patched = append(patched, e.text...)
		prev = e.at
	}
	patched = append(patched, content[prev:]...)

	var rules []text.ReplacementRule
	for _, r := range p.rules {
		if r.Applies(path) {
			rules = append(rules, r)
		}
	}

	replaced, err := p.replacer.ReplaceText(ctx, bytes.NewReader(patched), rules)
	if err != nil {
		return nil, errors.Errorf("rewriting call sites: %w", err)
	}

	result := &Result{
		Content:  replaced.ModifiedContent,
		Line:     line,
		Rewrites: replaced.ReplacementCount,
		Review:   p.reviewLines(replaced.ModifiedContent),
		Stats:    diffStats(content, replaced.ModifiedContent),
	}

	if result.Rewrites == 0 && result.Stats.Deleted > 0 {
		return nil, errors.Errorf("patch for %s removed %d runes without a rewrite", path, result.Stats.Deleted)
	}

	logger.Debug().
		Str("path", path).
		Int("line", result.Line).
		Int("rewrites", result.Rewrites).
		Int("inserted", result.Stats.Inserted).
		Int("deleted", result.Stats.Deleted).
		Ints("review", result.Review).
		Msg("patched model")

	return result, nil
}

// findAnchor returns the submatch index of the first anchor declared in code
// whose raw value is quote free, the same occurrence the field extractor reads
func (p *Patcher) findAnchor(content []byte) []int {
	for _, m := range p.anchorPattern.FindAllSubmatchIndex(model.Mask(content), -1) {
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[4], m[5]
		}
		if !bytes.ContainsAny(content[start:end], `"'`) {
			return m
		}
	}
	return nil
}

// plan works out where the declaration goes. m is the anchor submatch index.
func (p *Patcher) plan(content []byte, m []int, value string) ([]insertion, int) {
	start, end := m[0], m[1]
	hasSep := m[6] >= 0
	valueEnd := end
	if hasSep {
		valueEnd = m[6]
	}

	lineStart := bytes.LastIndexByte(content[:start], '\n') + 1
	indent := leadingSpace(content[lineStart:start])

	lineEnd := len(content)
	if i := bytes.IndexByte(content[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	newline := "\n"
	termStart := lineEnd
	if lineEnd < len(content) {
		if lineEnd > end && content[lineEnd-1] == '\r' {
			termStart = lineEnd - 1
			newline = "\r\n"
		}
	} else if bytes.Contains(content, []byte("\r\n")) {
		newline = "\r\n"
	}

	line := bytes.Count(content[:start], []byte("\n")) + 1
	decl := p.field + ": " + strconv.Quote(value)

	if restOfLineIsTrivia(content[end:termStart]) {
		line += bytes.Count(content[start:termStart], []byte("\n")) + 1
		if hasSep {
			return []insertion{{at: termStart, text: newline + indent + decl + ","}}, line
		}
		// the anchor was the last entry, so it gains the separator and the new entry takes its place
		return []insertion{
			{at: valueEnd, text: ","},
			{at: termStart, text: newline + indent + decl},
		}, line
	}

	line += bytes.Count(content[start:end], []byte("\n"))
	if hasSep {
		return []insertion{{at: end, text: " " + decl + ","}}, line
	}
	return []insertion{{at: valueEnd, text: ", " + decl}}, line
}

// restOfLineIsTrivia reports whether only whitespace or a comment follows the anchor
func restOfLineIsTrivia(rest []byte) bool {
	trimmed := bytes.TrimSpace(rest)
	if len(trimmed) == 0 || bytes.HasPrefix(trimmed, []byte("//")) {
		return true
	}
	if bytes.HasPrefix(trimmed, []byte("/*")) && bytes.HasSuffix(trimmed, []byte("*/")) {
		return !bytes.Contains(trimmed[2:len(trimmed)-2], []byte("*/"))
	}
	return false
}

func leadingSpace(b []byte) string {
	n := 0
	for n < len(b) && (b[n] == ' ' || b[n] == '\t') {
		n++
	}
	return string(b[:n])
}

// reviewLines lists lines still reaching the anchor through member access,
// e.g. MODEL_CONFIG.contentType outside the rewritten call site
func (p *Patcher) reviewLines(content []byte) []int {
	masked := model.Mask(content)
	seen := map[int]bool{}
	var lines []int
	for _, loc := range p.reviewPattern.FindAllIndex(masked, -1) {
		l := bytes.Count(masked[:loc[0]], []byte("\n")) + 1
		if !seen[l] {
			seen[l] = true
			lines = append(lines, l)
		}
	}
	sort.Ints(lines)
	return lines
}

func diffStats(before, after []byte) Stats {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(before), string(after), false)

	var s Stats
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			s.Deleted += len([]rune(d.Text))
		}
	}
	return s
}
