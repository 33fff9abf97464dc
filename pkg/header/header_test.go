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
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	h := New(KindRecipeList, "v1.0.0",
		WithClock(func() time.Time { return fixed }),
		WithMetadata("env", "prod"),
	)

	if h.Kind != KindRecipeList || h.APIVersion != APIVersion {
		t.Errorf("unexpected header %+v", h)
	}
	want := map[string]string{
		"timestamp": "2025-03-04T05:06:07Z",
		"version":   "v1.0.0",
		"env":       "prod",
	}
	for k, v := range want {
		if h.Metadata[k] != v {
			t.Errorf("Metadata[%s] = %q, want %q", k, h.Metadata[k], v)
		}
	}

	if _, ok := New(KindRecipe, "").Metadata["version"]; ok {
		t.Error("empty version should not be recorded")
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		h       Header
		want    Kind
		wantErr bool
	}{
		{"match", Header{Kind: KindRecipeList, APIVersion: APIVersion}, KindRecipeList, false},
		{"wrong kind", Header{Kind: KindRecipe, APIVersion: APIVersion}, KindRecipeList, true},
		{"wrong version", Header{Kind: KindRecipeList, APIVersion: "recipes/v0"}, KindRecipeList, true},
		{"empty", Header{}, KindRecipeList, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.h.Check(tt.want)
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKind(t *testing.T) {
	if !KindRecipe.IsValid() || !KindRecipeList.IsValid() {
		t.Error("known kinds should be valid")
	}
	if Kind("Ingredient").IsValid() {
		t.Error("Ingredient should not be valid")
	}
	if KindRecipeList.String() != "RecipeList" {
		t.Errorf("String() = %q", KindRecipeList.String())
	}
}
