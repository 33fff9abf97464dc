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
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the textual timestamp format of created_at and updated_at
// in the backing file (DD/MM/YYYY HH:MM:SS).
const TimeLayout = "02/01/2006 15:04:05"

// BoxType is the delivery box a recipe ships in.
type BoxType string

// BoxType constants.
const (
	BoxTypeGourmet    BoxType = "gourmet"
	BoxTypeVegetarian BoxType = "vegetarian"
)

// IsValid reports whether b is a supported box type.
func (b BoxType) IsValid() bool {
	switch b {
	case BoxTypeGourmet, BoxTypeVegetarian:
		return true
	default:
		return false
	}
}

// ParseBoxType parses a string into a BoxType.
func ParseBoxType(s string) (BoxType, error) {
	b := BoxType(strings.TrimSpace(s))
	if !b.IsValid() {
		return "", fmt.Errorf("invalid box type: %s", s)
	}
	return b, nil
}

// SupportedBoxTypes returns all supported box types sorted alphabetically.
func SupportedBoxTypes() []string {
	return []string{string(BoxTypeGourmet), string(BoxTypeVegetarian)}
}

// DietType is the recipe_diet_type_id classification.
type DietType string

// DietType constants.
const (
	DietTypeFish       DietType = "fish"
	DietTypeMeat       DietType = "meat"
	DietTypeVegetarian DietType = "vegetarian"
)

// IsValid reports whether d is a supported diet type.
func (d DietType) IsValid() bool {
	switch d {
	case DietTypeFish, DietTypeMeat, DietTypeVegetarian:
		return true
	default:
		return false
	}
}

// ParseDietType parses a string into a DietType.
func ParseDietType(s string) (DietType, error) {
	d := DietType(strings.TrimSpace(s))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid diet type: %s", s)
	}
	return d, nil
}

// SupportedDietTypes returns all supported diet types sorted alphabetically.
func SupportedDietTypes() []string {
	return []string{string(DietTypeFish), string(DietTypeMeat), string(DietTypeVegetarian)}
}

// FormatTime renders t in TimeLayout (UTC). The zero time renders as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a TimeLayout timestamp as UTC. "" parses to the zero time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected DD/MM/YYYY HH:MM:SS: %w", s, err)
	}
	return t, nil
}
