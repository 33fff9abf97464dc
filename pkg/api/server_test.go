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

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nataliastanko/recipes-api/pkg/config"
	"github.com/nataliastanko/recipes-api/pkg/recipe"
)

// Serve blocks until shutdown, so these tests drive NewServer through its
// root handler instead.

func TestConstants(t *testing.T) {
	if name != "recipesd" {
		t.Errorf("name = %q, want %q", name, "recipesd")
	}
	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}
	if version == "" || commit == "" || date == "" {
		t.Error("build variables should not be empty")
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Env = config.EnvTest
	cfg.StorageDir = t.TempDir()
	return cfg
}

func newTestHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	s, err := NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s.Handler()
}

func call(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewServerCreatesStorage(t *testing.T) {
	cfg := testConfig(t)
	newTestHandler(t, cfg)

	data, err := os.ReadFile(filepath.Join(cfg.StorageDir, "data_test.csv"))
	if err != nil {
		t.Fatalf("storage file not created: %v", err)
	}
	header := strings.TrimSpace(string(data))
	if header != strings.Join(recipe.Fields(), ",") {
		t.Errorf("header = %q", header)
	}
}

func TestNewServerStorageFileMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageFileMode = "0600"
	newTestHandler(t, cfg)

	info, err := os.Stat(cfg.StorageFile())
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("storage file mode = %o, want 600", got)
	}
}

func TestNewServerUnwritableStorage(t *testing.T) {
	cfg := testConfig(t)
	// a regular file where the storage directory should be
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.StorageDir = blocker

	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Error("expected error for unusable storage directory")
	}
}

func TestRecipeLifecycle(t *testing.T) {
	h := newTestHandler(t, testConfig(t))

	body := `{"title":"Pork Chilli","recipe_cuisine":"mexican","marketing_description":"Warming.",` +
		`"box_type":"gourmet","recipe_diet_type_id":"meat"}`

	w := call(t, h, http.MethodPost, "/recipes", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created recipe.Recipe
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID != 1 {
		t.Errorf("first id = %d, want 1", created.ID)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("middleware should set X-Request-Id")
	}

	w = call(t, h, http.MethodPost, "/recipes/1/rating/4", "")
	if w.Code != http.StatusOK {
		t.Fatalf("vote status = %d, body = %s", w.Code, w.Body.String())
	}
	var rating recipe.RatingSummary
	if err := json.Unmarshal(w.Body.Bytes(), &rating); err != nil {
		t.Fatal(err)
	}
	if rating.VotesCount != 1 || rating.RatingValue != 4 {
		t.Errorf("rating = %+v", rating)
	}

	w = call(t, h, http.MethodGet, "/recipes?recipe_cuisine=mexican", "")
	var list []recipe.Recipe
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].VotesSum != 4 {
		t.Errorf("list = %+v", list)
	}

	for target, want := range map[string]int{
		"/recipes?offset=0&limit=9223372036854775807":                   1,
		"/recipes?offset=9223372036854775807&limit=9223372036854775807": 0,
		"/recipes?recipe_cuisine=%20mexican":                            0,
	} {
		w = call(t, h, http.MethodGet, target, "")
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, body = %s", target, w.Code, w.Body.String())
		}
		list = nil
		if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
			t.Fatal(err)
		}
		if len(list) != want {
			t.Errorf("GET %s returned %d recipes, want %d", target, len(list), want)
		}
	}

	w = call(t, h, http.MethodDelete, "/recipes/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = call(t, h, http.MethodGet, "/recipes/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestSystemEndpoints(t *testing.T) {
	h := newTestHandler(t, testConfig(t))

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodOptions, "/recipes", http.StatusOK},
		{http.MethodPatch, "/recipes/1", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := call(t, h, tt.method, tt.target, "")
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestConcurrentCreates(t *testing.T) {
	h := newTestHandler(t, testConfig(t))
	body := `{"title":"t","recipe_cuisine":"c","marketing_description":"d",` +
		`"box_type":"vegetarian","recipe_diet_type_id":"vegetarian"}`

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			call(t, h, http.MethodPost, "/recipes", body)
		})
	}
	wg.Wait()

	w := call(t, h, http.MethodGet, "/recipes?limit=100", "")
	var list []recipe.Recipe
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != n {
		t.Fatalf("stored %d recipes, want %d", len(list), n)
	}
	seen := map[int]bool{}
	for _, r := range list {
		if seen[r.ID] {
			t.Errorf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
}
