// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package header

import (
	"fmt"
	"time"
)

// APIVersion is the current document schema version.
const APIVersion = "recipes/v1"

// Kind identifies the document type.
type Kind string

// Document kinds.
const (
	KindRecipe     Kind = "Recipe"
	KindRecipeList Kind = "RecipeList"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindRecipe, KindRecipeList:
		return true
	default:
		return false
	}
}

// Header is the common envelope of exported documents.
type Header struct {
	Kind       Kind              `json:"kind" yaml:"kind"`
	APIVersion string            `json:"apiVersion" yaml:"apiVersion"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Option configures a Header.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(h *Header) {
		h.Metadata["timestamp"] = now().UTC().Format(time.RFC3339)
	}
}

// New returns a header of the given kind stamped with the current time and,
// when non-empty, the tool version.
func New(kind Kind, version string, opts ...Option) Header {
	h := Header{
		Kind:       kind,
		APIVersion: APIVersion,
		Metadata: map[string]string{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if version != "" {
		h.Metadata["version"] = version
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Check verifies that h is a document of the wanted kind and a supported
// API version.
func (h Header) Check(want Kind) error {
	if h.APIVersion != APIVersion {
		return fmt.Errorf("unsupported apiVersion %q, expected %q", h.APIVersion, APIVersion)
	}
	if h.Kind != want {
		return fmt.Errorf("unexpected kind %q, expected %q", h.Kind, want)
	}
	return nil
}
