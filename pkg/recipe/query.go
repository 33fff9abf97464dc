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

package recipe

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/nataliastanko/recipes-api/pkg/defaults"
	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
)

// Query parameter names accepted by the list endpoint.
const (
	QueryParamOffset = "offset"
	QueryParamLimit  = "limit"
)

// ListQuery holds the parsed parameters of a list request.
type ListQuery struct {
	Offset  int               `json:"offset" yaml:"offset"`
	Limit   int               `json:"limit" yaml:"limit"`
	Filters map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// ParseListQuery reads offset, limit and the recipe_cuisine filter from
// query values. Missing values take the package defaults; negative or
// non-integer values are rejected with INVALID_REQUEST. An empty
// recipe_cuisine is ignored.
func ParseListQuery(values url.Values) (ListQuery, error) {
	q := ListQuery{
		Offset: defaults.ListOffset,
		Limit:  defaults.ListLimit,
	}

	var err error
	if q.Offset, err = nonNegative(values, QueryParamOffset, q.Offset); err != nil {
		return ListQuery{}, err
	}
	if q.Limit, err = nonNegative(values, QueryParamLimit, q.Limit); err != nil {
		return ListQuery{}, err
	}

	if cuisine := values.Get(FieldRecipeCuisine); cuisine != "" {
		q.Filters = map[string]string{FieldRecipeCuisine: cuisine}
	}
	return q, nil
}

func nonNegative(values url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"query parameter must be a non-negative integer", map[string]any{
				"parameter": name,
				"value":     raw,
			})
	}
	return n, nil
}

// ParseID parses a recipe id path value. Ids are positive integers.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 1 {
		return 0, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"recipe id must be a positive integer", map[string]any{"id": s})
	}
	return id, nil
}
