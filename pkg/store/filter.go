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
	"slices"

	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
	"github.com/nataliastanko/recipes-api/pkg/recipe"
)

// Filter selects recipes. A nil Filter selects everything.
type Filter func(recipe.Recipe) bool

// Equals matches recipes whose stored text for field equals value exactly.
// Comparison is case-sensitive. Unknown fields never match.
func Equals(field, value string) Filter {
	return func(r recipe.Recipe) bool {
		v, ok := r.Text(field)
		return ok && v == value
	}
}

// All matches recipes accepted by every non-nil filter.
func All(filters ...Filter) Filter {
	return func(r recipe.Recipe) bool {
		for _, f := range filters {
			if f != nil && !f(r) {
				return false
			}
		}
		return true
	}
}

// MatchFields builds an AND of Equals filters from a field to value map.
// It returns an INVALID_REQUEST error naming any field outside the schema.
func MatchFields(fields map[string]string) (Filter, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	filters := make([]Filter, 0, len(names))
	for _, name := range names {
		if !recipe.IsField(name) {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				"unknown filter field", map[string]any{"field": name})
		}
		filters = append(filters, Equals(name, fields[name]))
	}
	return All(filters...), nil
}

func apply(recs []recipe.Recipe, f Filter) []recipe.Recipe {
	if f == nil {
		return recs
	}
	out := recs[:0:0]
	for _, r := range recs {
		if f(r) {
			out = append(out, r)
		}
	}
	return out
}

// page returns recs[offset:offset+limit] clipped to the slice bounds.
// A negative limit means no limit.
func page(recs []recipe.Recipe, offset, limit int) []recipe.Recipe {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(recs) {
		return []recipe.Recipe{}
	}
	end := len(recs)
	if limit >= 0 && limit < end-offset {
		end = offset + limit
	}
	return recs[offset:end]
}
