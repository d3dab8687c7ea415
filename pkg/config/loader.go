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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🗺️ CategoryEntry maps a provider and content type to a key name
type CategoryEntry struct {
	Provider    string `json:"provider" yaml:"provider" hcl:"provider,label"`
	ContentType string `json:"content_type" yaml:"content_type" hcl:"content_type,label"`
	Key         string `json:"key" yaml:"key" hcl:"key"`
}

// 🆔 IdentityEntry pins a single record to a key name, whatever its category
type IdentityEntry struct {
	RecordID string `json:"record_id" yaml:"record_id" hcl:"record_id,label"`
	Key      string `json:"key" yaml:"key" hcl:"key"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty" hcl:"model,optional"`
}

// 📜 PolicyDocument is the serialized form of the key policy
type PolicyDocument struct {
	Categories []CategoryEntry `json:"categories" yaml:"categories" hcl:"category,block"`
	Identities []IdentityEntry `json:"identities" yaml:"identities" hcl:"identity,block"`
}

// ParsePolicy decodes a policy document.
// The format is determined by the name's extension:
// - .hcl for HCL
// - .yaml or .yml for YAML
// - .json for JSON
func ParsePolicy(ctx context.Context, name string, data []byte) (*PolicyDocument, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("name", name).Int("size", len(data)).Msg("parsing policy document")

	var (
		doc *PolicyDocument
		err error
	)

	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".hcl":
		doc, err = loadHCL(data, name)
	case ".yaml", ".yml":
		doc, err = loadYAML(data)
	case ".json":
		doc, err = loadJSON(data)
	default:
		return nil, errors.Errorf("unsupported policy extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("categories", len(doc.Categories)).
		Int("identities", len(doc.Identities)).
		Msg("parsed policy document")

	return doc, nil
}

// PolicyFormats lists the formats WritePolicy accepts
var PolicyFormats = []string{"hcl", "yaml", "json"}

// 📤 WritePolicy encodes doc to w in the named format. The output parses
// back with ParsePolicy given a name with the matching extension.
func WritePolicy(w io.Writer, format string, doc *PolicyDocument) error {
	if doc == nil {
		return errors.Errorf("policy document is required")
	}

	switch strings.ToLower(format) {
	case "hcl":
		f := hclwrite.NewEmptyFile()
		gohcl.EncodeIntoBody(doc, f.Body())
		if _, err := w.Write(f.Bytes()); err != nil {
			return errors.Errorf("writing HCL: %w", err)
		}
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return errors.Errorf("encoding YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return errors.Errorf("encoding YAML: %w", err)
		}
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return errors.Errorf("encoding JSON: %w", err)
		}
	default:
		return errors.Errorf("unsupported policy format %q", format)
	}

	return nil
}

// loadJSON loads a policy from JSON data
func loadJSON(data []byte) (*PolicyDocument, error) {
	var doc PolicyDocument
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &doc, nil
}

// loadYAML loads a policy from YAML data
func loadYAML(data []byte) (*PolicyDocument, error) {
	var doc PolicyDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Errorf("parsing YAML: empty document")
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &doc, nil
}

// loadHCL loads a policy from HCL data
func loadHCL(data []byte, filename string) (*PolicyDocument, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var doc PolicyDocument
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &doc)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &doc, nil
}
