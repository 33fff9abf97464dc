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

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/nataliastanko/recipes-api/pkg/defaults"
	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
	"github.com/nataliastanko/recipes-api/pkg/fsutil"
	"github.com/nataliastanko/recipes-api/pkg/recipe"
)

var (
	// ErrStorageUnreadable is the cause of failures to read, create or write the backing file.
	ErrStorageUnreadable = errors.New("storage unreadable")
	// ErrMalformedRow is the cause of failures to decode a row of the backing file.
	ErrMalformedRow = errors.New("malformed row")
	// ErrNotFound is the cause of mutations that target an absent id.
	ErrNotFound = errors.New("recipe not found")
)

// Store is a CSV-file backed recipe collection.
type Store struct {
	path string
	perm os.FileMode
	now  func() time.Time

	mu sync.Mutex
}

// Option is a functional option for configuring Store instances.
type Option func(*Store)

// WithClock sets the time source used to stamp created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFilePerm sets the permission bits of the backing file.
func WithFilePerm(perm os.FileMode) Option {
	return func(s *Store) {
		s.perm = perm
	}
}

// New returns a Store backed by the CSV file at path.
// The file is not touched until the first operation.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		perm: defaults.StorageFilePerm,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Init creates the backing file with a header row if it does not exist yet.
// It reports whether the file was created.
func (s *Store) Init(ctx context.Context) (bool, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkContext(ctx); err != nil {
		return false, err
	}
	created, err := s.ensure()
	observe("init", start, err)
	return created, err
}

// Load returns every recipe in file order that passes filter.
// A nil filter returns all recipes.
func (s *Store) Load(ctx context.Context, filter Filter) ([]recipe.Recipe, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	observe("load", start, err)
	if err != nil {
		return nil, err
	}
	return apply(recs, filter), nil
}

// List returns the window [offset, offset+limit) of the recipes that match
// every field to value pair in filters. Bounds are clipped to the result; a
// negative limit returns everything from offset on.
func (s *Store) List(ctx context.Context, offset, limit int, filters map[string]string) ([]recipe.Recipe, error) {
	f, err := MatchFields(filters)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	observe("list", start, err)
	if err != nil {
		return nil, err
	}
	return page(apply(recs, f), offset, limit), nil
}

// FindOne returns the recipe whose stored text for field equals value.
// When several recipes match, the last one in file order is returned.
// The boolean is false when nothing matches.
func (s *Store) FindOne(ctx context.Context, field, value string) (recipe.Recipe, bool, error) {
	if !recipe.IsField(field) {
		return recipe.Recipe{}, false, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"unknown field", map[string]any{"field": field})
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	observe("find", start, err)
	if err != nil {
		return recipe.Recipe{}, false, err
	}

	matches := apply(recs, Equals(field, value))
	if len(matches) == 0 {
		return recipe.Recipe{}, false, nil
	}
	return matches[len(matches)-1], true, nil
}

// Get returns the recipe with the given id.
func (s *Store) Get(ctx context.Context, id int) (recipe.Recipe, bool, error) {
	return s.FindOne(ctx, recipe.FieldID, strconv.Itoa(id))
}

// Ping reads and decodes the backing file, reporting any error that would
// fail a request. It serves as the storage readiness check.
func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.load(ctx)
	observe("ping", start, err)
	return err
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		code := apperrors.ErrCodeTimeout
		if errors.Is(err, context.Canceled) {
			code = apperrors.ErrCodeUnavailable
		}
		return apperrors.Wrap(code, "storage operation aborted", err)
	}
	return nil
}

// load reads and decodes the whole backing file, creating it first when missing.
// Callers hold s.mu.
func (s *Store) load(ctx context.Context) ([]recipe.Recipe, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if _, err := s.ensure(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, s.unreadable("failed to read storage file", err)
	}

	recs, err := decode(bytes.NewReader(data))
	if err != nil {
		var re *rowError
		if errors.As(err, &re) {
			slog.Error("malformed storage row", "path", s.path, "row", re.row, "field", re.field, "error", re.err)
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInternal,
				"storage file contains a malformed row",
				fmt.Errorf("%w: %w", ErrMalformedRow, err),
				map[string]any{"path": s.path, "row": re.row, "field": re.field})
		}
		return nil, s.unreadable("failed to parse storage file", err)
	}

	storeRecords.Set(float64(len(recs)))
	return recs, nil
}

// ensure creates a header-only backing file if none exists.
func (s *Store) ensure() (bool, error) {
	exists, err := fsutil.Exists(s.path)
	if err != nil {
		return false, s.unreadable("failed to stat storage file", err)
	}
	if exists {
		return false, nil
	}

	slog.Debug("creating storage file", "path", s.path)
	if err := s.write(nil); err != nil {
		return false, err
	}
	return true, nil
}

// write rewrites the backing file with recs in canonical form.
func (s *Store) write(recs []recipe.Recipe) error {
	err := fsutil.WriteFileAtomic(s.path, s.perm, func(w io.Writer) error {
		return encode(w, recs)
	})
	if err != nil {
		return s.unreadable("failed to write storage file", err)
	}
	storeRecords.Set(float64(len(recs)))
	return nil
}

func (s *Store) unreadable(msg string, err error) error {
	slog.Error(msg, "path", s.path, "error", err)
	return apperrors.WrapWithContext(apperrors.ErrCodeInternal, msg,
		fmt.Errorf("%w: %w", ErrStorageUnreadable, err),
		map[string]any{"path": s.path})
}

func sortByID(recs []recipe.Recipe) {
	slices.SortStableFunc(recs, func(a, b recipe.Recipe) int {
		return a.ID - b.ID
	})
}

func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}
