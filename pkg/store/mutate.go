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
	"context"
	"time"

	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
	"github.com/nataliastanko/recipes-api/pkg/recipe"
)

// Create assigns r the next id and the current time as both created_at and
// updated_at, appends it and rewrites the file. Any id, timestamps or rating
// value already on r are overwritten. Text line endings are stored as LF.
func (s *Store) Create(ctx context.Context, r recipe.Recipe) (recipe.Recipe, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.create(ctx, r)
	observe("create", start, err)
	return out, err
}

func (s *Store) create(ctx context.Context, r recipe.Recipe) (recipe.Recipe, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return recipe.Recipe{}, err
	}

	next := 1
	for _, existing := range recs {
		if existing.ID >= next {
			next = existing.ID + 1
		}
	}

	now := s.stamp()
	out := r.Clone()
	out.ID = next
	out.CreatedAt = now
	out.UpdatedAt = now
	out.NormalizeText()
	out.Recalculate()

	recs = append(recs, out)
	sortByID(recs)
	if err := s.write(recs); err != nil {
		return recipe.Recipe{}, err
	}
	return out, nil
}

// Update replaces the recipe with the given id by r. The stored created_at is
// kept and updated_at is refreshed. It fails with NOT_FOUND if id is absent.
func (s *Store) Update(ctx context.Context, id int, r recipe.Recipe) (recipe.Recipe, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.replace(ctx, id, func(current recipe.Recipe) (recipe.Recipe, error) {
		next := r.Clone()
		next.CreatedAt = current.CreatedAt
		return next, nil
	})
	observe("update", start, err)
	return out, err
}

// Vote adds a vote of value to the recipe with the given id and rewrites the
// file. Values outside [recipe.MinVote, recipe.MaxVote] are rejected with
// UNPROCESSABLE_ENTITY; an absent id fails with NOT_FOUND.
func (s *Store) Vote(ctx context.Context, id, value int) (recipe.Recipe, error) {
	if err := recipe.ValidateVote(value); err != nil {
		return recipe.Recipe{}, err
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.replace(ctx, id, func(current recipe.Recipe) (recipe.Recipe, error) {
		next := current.Clone()
		recipe.ApplyVote(&next, value)
		return next, nil
	})
	observe("vote", start, err)
	return out, err
}

// Delete removes the recipe with the given id and rewrites the file.
// Deleting an absent id is not an error; the boolean reports whether a
// recipe was removed.
func (s *Store) Delete(ctx context.Context, id int) (bool, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.delete(ctx, id)
	observe("delete", start, err)
	return found, err
}

func (s *Store) delete(ctx context.Context, id int) (bool, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := recs[:0:0]
	for _, r := range recs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	sortByID(kept)
	if err := s.write(kept); err != nil {
		return false, err
	}
	return len(kept) != len(recs), nil
}

// replace loads the file, hands the last recipe with the given id to fn and
// stores its result in the same slot with the id and updated_at reset.
// Callers hold s.mu.
func (s *Store) replace(ctx context.Context, id int, fn func(recipe.Recipe) (recipe.Recipe, error)) (recipe.Recipe, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return recipe.Recipe{}, err
	}

	idx := -1
	for i := range recs {
		if recs[i].ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return recipe.Recipe{}, apperrors.WrapWithContext(apperrors.ErrCodeNotFound,
			"recipe not found", ErrNotFound, map[string]any{"id": id})
	}

	next, err := fn(recs[idx])
	if err != nil {
		return recipe.Recipe{}, err
	}
	next.ID = id
	next.UpdatedAt = s.stamp()
	next.NormalizeText()
	next.Recalculate()

	recs[idx] = next
	sortByID(recs)
	if err := s.write(recs); err != nil {
		return recipe.Recipe{}, err
	}
	return next, nil
}
