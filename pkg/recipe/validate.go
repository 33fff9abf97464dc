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
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
)

// Violation messages.
const (
	MsgMissing    = "This field is missing."
	MsgNotBlank   = "This value should not be blank."
	MsgChoice     = "The value you selected is not a valid choice."
	MsgInteger    = "This value should be of type integer."
	MsgNotNegInt  = "This value should be greater than or equal to 0."
	MsgNotAString = "This value should be of type string."
)

// Payload is a decoded create or update body keyed by field name.
// Values are strings, json.Number, float64, bool or nil.
type Payload map[string]any

// Violations maps a field name to its human-readable violation messages.
// An empty Violations means the payload is valid.
type Violations map[string][]string

// Add records a violation for field.
func (v Violations) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

// Empty reports whether there are no violations.
func (v Violations) Empty() bool {
	return len(v) == 0
}

var (
	requiredFields = []string{
		FieldTitle,
		FieldRecipeCuisine,
		FieldMarketingDescription,
		FieldBoxType,
		FieldRecipeDietTypeID,
	}

	integerFields = []string{
		FieldPreparationTimeMinutes,
		FieldCaloriesKcal,
		FieldProteinGrams,
		FieldFatGrams,
		FieldCarbsGrams,
		FieldShelfLifeDays,
	}

	counterFields = []string{
		FieldVotesCount,
		FieldVotesSum,
	}

	// Fields owned by the store; accepted in payloads but never applied.
	managedFields = []string{
		FieldID,
		FieldCreatedAt,
		FieldUpdatedAt,
		FieldRatingValue,
	}
)

// UnknownFields returns the payload keys that are not part of the record
// schema, sorted.
func UnknownFields(f Payload) []string {
	var out []string
	for k := range f {
		if !IsField(k) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Validate checks a payload against the field constraints of a recipe.
func Validate(f Payload) Violations {
	v := Violations{}

	for _, name := range requiredFields {
		raw, present := f[name]
		switch {
		case !present:
			v.Add(name, MsgMissing)
		case isBlank(raw):
			v.Add(name, MsgNotBlank)
		default:
			if _, ok := raw.(string); !ok {
				v.Add(name, MsgNotAString)
			}
		}
	}

	if s, ok := f[FieldBoxType].(string); ok && !isBlank(s) && !BoxType(s).IsValid() {
		v.Add(FieldBoxType, MsgChoice)
	}
	if s, ok := f[FieldRecipeDietTypeID].(string); ok && !isBlank(s) && !DietType(s).IsValid() {
		v.Add(FieldRecipeDietTypeID, MsgChoice)
	}

	for _, name := range integerFields {
		raw, present := f[name]
		if !present || raw == nil {
			continue
		}
		if _, ok := asInt(raw); !ok {
			v.Add(name, MsgInteger)
		}
	}

	for _, name := range counterFields {
		raw, present := f[name]
		if !present || raw == nil {
			continue
		}
		n, ok := asInt(raw)
		if !ok {
			v.Add(name, MsgInteger)
			continue
		}
		if n < 0 {
			v.Add(name, MsgNotNegInt)
		}
	}

	return v
}

// FromPayload converts a validated payload into a Recipe. Store-managed fields
// (id, timestamps, rating value) are ignored; missing fields take their zero value.
func FromPayload(f Payload) (Recipe, error) {
	var r Recipe
	for name, raw := range f {
		if slices.Contains(managedFields, name) || !IsField(name) {
			continue
		}

		if slices.Contains(integerFields, name) || slices.Contains(counterFields, name) {
			if raw == nil {
				continue
			}
			n, ok := asInt(raw)
			if !ok || (slices.Contains(counterFields, name) && n < 0) {
				return Recipe{}, invalidField(name, raw)
			}
			raw = strconv.Itoa(n)
		}

		if err := r.SetText(name, asString(raw)); err != nil {
			return Recipe{}, invalidField(name, raw)
		}
	}
	r.Recalculate()
	return r, nil
}

func invalidField(name string, raw any) error {
	return apperrors.NewWithContext(apperrors.ErrCodeUnprocessable,
		fmt.Sprintf("invalid value for %s", name), map[string]any{
			"field": name,
			"value": raw,
		})
}

func isBlank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// asInt accepts JSON integers and, for form payloads, integer strings.
func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func asString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
