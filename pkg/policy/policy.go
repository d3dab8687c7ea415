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

// Package policy decides which API key a model file should use.
package policy

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/walteh/keystamp/pkg/config"
	"github.com/walteh/keystamp/pkg/model"
	"gitlab.com/tozd/go/errors"
)

//go:embed policy.hcl
var defaultPolicy []byte

// DefaultPolicyName is the name the embedded policy is parsed under
const DefaultPolicyName = "policy.hcl"

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// 🏷️ Category is a provider and content type pair
type Category struct {
	Provider    string
	ContentType string
}

func (c Category) String() string {
	return fmt.Sprintf("provider=%s, contentType=%s", c.Provider, c.ContentType)
}

// 🆔 Override is the key pinned to a single record
type Override struct {
	Key   string
	Model string // Optional label for logs
}

// 📚 Tables holds the identity overrides and the category mapping.
// Tables are never modified after construction.
type Tables struct {
	identity map[string]Override
	category map[Category]string
}

// 🔀 Source records which table produced a key
type Source int

const (
	SourceNone Source = iota
	SourceIdentity
	SourceCategory
)

func (s Source) String() string {
	switch s {
	case SourceIdentity:
		return "identity"
	case SourceCategory:
		return "category"
	default:
		return "none"
	}
}

// 🎯 Resolution is the outcome of resolving a model's key
type Resolution struct {
	Key      string
	Source   Source
	Model    string   // Set for identity overrides that carry a label
	Category Category // The pair that was looked up
}

// Resolved reports whether a key was found
func (r Resolution) Resolved() bool {
	return r.Source != SourceNone
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// 🏭 Default returns the tables compiled into the binary. They are decoded
// once; a broken embedded policy panics on first use.
func Default() *Tables {
	defaultOnce.Do(func() {
		doc, err := config.ParsePolicy(context.Background(), DefaultPolicyName, defaultPolicy)
		if err != nil {
			panic(fmt.Sprintf("embedded policy: %v", err))
		}
		tables, err := FromDocument(doc)
		if err != nil {
			panic(fmt.Sprintf("embedded policy: %v", err))
		}
		defaultTables = tables
	})
	return defaultTables
}

// 🏗️ FromDocument builds tables from a decoded policy document
func FromDocument(doc *config.PolicyDocument) (*Tables, error) {
	if doc == nil {
		return nil, errors.Errorf("policy document is required")
	}

	t := &Tables{
		identity: make(map[string]Override, len(doc.Identities)),
		category: make(map[Category]string, len(doc.Categories)),
	}

	for i, c := range doc.Categories {
		if c.Provider == "" || c.ContentType == "" {
			return nil, errors.Errorf("category %d: provider and content type are required", i)
		}
		if !keyPattern.MatchString(c.Key) {
			return nil, errors.Errorf("category %s/%s: invalid key %q", c.Provider, c.ContentType, c.Key)
		}
		cat := Category{Provider: c.Provider, ContentType: c.ContentType}
		if _, ok := t.category[cat]; ok {
			return nil, errors.Errorf("duplicate category %s/%s", c.Provider, c.ContentType)
		}
		t.category[cat] = c.Key
	}

	for _, id := range doc.Identities {
		parsed, err := uuid.Parse(id.RecordID)
		if err != nil {
			return nil, errors.Errorf("identity %q: %w", id.RecordID, err)
		}
		// record ids are compared verbatim, so only the canonical form is accepted
		if parsed.String() != id.RecordID {
			return nil, errors.Errorf("identity %q: must be a lowercase hyphenated uuid", id.RecordID)
		}
		if !keyPattern.MatchString(id.Key) {
			return nil, errors.Errorf("identity %s: invalid key %q", id.RecordID, id.Key)
		}
		if _, ok := t.identity[id.RecordID]; ok {
			return nil, errors.Errorf("duplicate identity %s", id.RecordID)
		}
		t.identity[id.RecordID] = Override{Key: id.Key, Model: id.Model}
	}

	return t, nil
}

// 🔍 Resolve picks the key for a model.
//
// A record id listed in the identity table wins over everything else. Otherwise
// the provider and content type pair is looked up in the category table. Files
// without both provider and content type are never resolved.
func (t *Tables) Resolve(f model.Fields) Resolution {
	if !f.Eligible() {
		return Resolution{}
	}

	cat := Category{Provider: *f.Provider, ContentType: *f.ContentType}

	if f.RecordID != nil {
		if o, ok := t.identity[*f.RecordID]; ok {
			return Resolution{Key: o.Key, Source: SourceIdentity, Model: o.Model, Category: cat}
		}
	}

	if key, ok := t.category[cat]; ok {
		return Resolution{Key: key, Source: SourceCategory, Category: cat}
	}

	return Resolution{Category: cat}
}

// 📋 Entry is one row of the policy, for listing
type Entry struct {
	Source   Source
	RecordID string
	Category Category
	Model    string
	Key      string
}

// Entries lists every row, identities first, each group sorted
func (t *Tables) Entries() []Entry {
	ids := make([]Entry, 0, len(t.identity))
	for id, o := range t.identity {
		ids = append(ids, Entry{Source: SourceIdentity, RecordID: id, Model: o.Model, Key: o.Key})
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Key != ids[j].Key {
			return ids[i].Key < ids[j].Key
		}
		return ids[i].RecordID < ids[j].RecordID
	})

	cats := make([]Entry, 0, len(t.category))
	for c, key := range t.category {
		cats = append(cats, Entry{Source: SourceCategory, Category: c, Key: key})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Category.Provider != cats[j].Category.Provider {
			return cats[i].Category.Provider < cats[j].Category.Provider
		}
		return cats[i].Category.ContentType < cats[j].Category.ContentType
	})

	return append(ids, cats...)
}

// 📜 Document returns the tables as a policy document in Entries order
func (t *Tables) Document() *config.PolicyDocument {
	doc := &config.PolicyDocument{}
	for _, e := range t.Entries() {
		switch e.Source {
		case SourceIdentity:
			doc.Identities = append(doc.Identities, config.IdentityEntry{RecordID: e.RecordID, Key: e.Key, Model: e.Model})
		case SourceCategory:
			doc.Categories = append(doc.Categories, config.CategoryEntry{
				Provider:    e.Category.Provider,
				ContentType: e.Category.ContentType,
				Key:         e.Key,
			})
		}
	}
	return doc
}
