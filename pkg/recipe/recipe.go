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
	"strconv"
	"strings"
	"time"

	"k8s.io/utils/ptr"
)

// Recipe is one record of the collection. Optional integer fields are nil
// when absent; optional text fields are empty.
type Recipe struct {
	ID                     int       `json:"id" yaml:"id"`
	CreatedAt              time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" yaml:"updated_at"`
	BoxType                BoxType   `json:"box_type" yaml:"box_type"`
	Title                  string    `json:"title" yaml:"title"`
	Slug                   string    `json:"slug" yaml:"slug"`
	ShortTitle             string    `json:"short_title" yaml:"short_title"`
	MarketingDescription   string    `json:"marketing_description" yaml:"marketing_description"`
	CaloriesKcal           *int      `json:"calories_kcal" yaml:"calories_kcal"`
	ProteinGrams           *int      `json:"protein_grams" yaml:"protein_grams"`
	FatGrams               *int      `json:"fat_grams" yaml:"fat_grams"`
	CarbsGrams             *int      `json:"carbs_grams" yaml:"carbs_grams"`
	Bulletpoint1           string    `json:"bulletpoint1" yaml:"bulletpoint1"`
	Bulletpoint2           string    `json:"bulletpoint2" yaml:"bulletpoint2"`
	Bulletpoint3           string    `json:"bulletpoint3" yaml:"bulletpoint3"`
	RecipeDietTypeID       DietType  `json:"recipe_diet_type_id" yaml:"recipe_diet_type_id"`
	Season                 string    `json:"season" yaml:"season"`
	Base                   string    `json:"base" yaml:"base"`
	ProteinSource          string    `json:"protein_source" yaml:"protein_source"`
	PreparationTimeMinutes *int      `json:"preparation_time_minutes" yaml:"preparation_time_minutes"`
	ShelfLifeDays          *int      `json:"shelf_life_days" yaml:"shelf_life_days"`
	EquipmentNeeded        string    `json:"equipment_needed" yaml:"equipment_needed"`
	OriginCountry          string    `json:"origin_country" yaml:"origin_country"`
	RecipeCuisine          string    `json:"recipe_cuisine" yaml:"recipe_cuisine"`
	InYourBox              string    `json:"in_your_box" yaml:"in_your_box"`
	RecipeReference        string    `json:"recipe_reference" yaml:"recipe_reference"`
	VotesCount             int       `json:"votes_count" yaml:"votes_count"`
	VotesSum               int       `json:"votes_sum" yaml:"votes_sum"`
	RatingValue            float64   `json:"rating_value" yaml:"rating_value"`
}

// Text returns the storage text of the named field, as written to a CSV cell.
// The boolean is false for names outside the record schema.
func (r *Recipe) Text(field string) (string, bool) {
	c, ok := columns[field]
	if !ok {
		return "", false
	}
	return c.get(r), true
}

// SetText parses value as the storage text of the named field and assigns it.
func (r *Recipe) SetText(field, value string) error {
	c, ok := columns[field]
	if !ok {
		return fmt.Errorf("unknown field: %s", field)
	}
	if err := c.set(r, value); err != nil {
		return fmt.Errorf("field %s: %w", field, err)
	}
	return nil
}

// Values returns the storage text of every schema field in column order.
func (r *Recipe) Values() []string {
	out := make([]string, len(schema))
	for i, f := range schema {
		out[i] = columns[f].get(r)
	}
	return out
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	c := r
	c.CaloriesKcal = clonePtr(r.CaloriesKcal)
	c.ProteinGrams = clonePtr(r.ProteinGrams)
	c.FatGrams = clonePtr(r.FatGrams)
	c.CarbsGrams = clonePtr(r.CarbsGrams)
	c.PreparationTimeMinutes = clonePtr(r.PreparationTimeMinutes)
	c.ShelfLifeDays = clonePtr(r.ShelfLifeDays)
	return c
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	return ptr.To(*p)
}

type column struct {
	get  func(*Recipe) string
	set  func(*Recipe, string) error
	text bool
}

// lineEndings folds CRLF and lone CR to LF. The CSV reader drops the CR of a
// CRLF inside quoted cells, so only LF survives a rewrite.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeText rewrites every free-text field with LF line endings, the form
// in which it is read back from the backing file.
func (r *Recipe) NormalizeText() {
	for _, f := range schema {
		if c := columns[f]; c.text {
			_ = c.set(r, c.get(r))
		}
	}
}

var columns = map[string]column{
	FieldID:                     counter(func(r *Recipe) *int { return &r.ID }),
	FieldCreatedAt:              timestamp(func(r *Recipe) *time.Time { return &r.CreatedAt }),
	FieldUpdatedAt:              timestamp(func(r *Recipe) *time.Time { return &r.UpdatedAt }),
	FieldBoxType:                text(func(r *Recipe) *BoxType { return &r.BoxType }),
	FieldTitle:                  text(func(r *Recipe) *string { return &r.Title }),
	FieldSlug:                   text(func(r *Recipe) *string { return &r.Slug }),
	FieldShortTitle:             text(func(r *Recipe) *string { return &r.ShortTitle }),
	FieldMarketingDescription:   text(func(r *Recipe) *string { return &r.MarketingDescription }),
	FieldCaloriesKcal:           optionalInt(func(r *Recipe) **int { return &r.CaloriesKcal }),
	FieldProteinGrams:           optionalInt(func(r *Recipe) **int { return &r.ProteinGrams }),
	FieldFatGrams:               optionalInt(func(r *Recipe) **int { return &r.FatGrams }),
	FieldCarbsGrams:             optionalInt(func(r *Recipe) **int { return &r.CarbsGrams }),
	FieldBulletpoint1:           text(func(r *Recipe) *string { return &r.Bulletpoint1 }),
	FieldBulletpoint2:           text(func(r *Recipe) *string { return &r.Bulletpoint2 }),
	FieldBulletpoint3:           text(func(r *Recipe) *string { return &r.Bulletpoint3 }),
	FieldRecipeDietTypeID:       text(func(r *Recipe) *DietType { return &r.RecipeDietTypeID }),
	FieldSeason:                 text(func(r *Recipe) *string { return &r.Season }),
	FieldBase:                   text(func(r *Recipe) *string { return &r.Base }),
	FieldProteinSource:          text(func(r *Recipe) *string { return &r.ProteinSource }),
	FieldPreparationTimeMinutes: optionalInt(func(r *Recipe) **int { return &r.PreparationTimeMinutes }),
	FieldShelfLifeDays:          optionalInt(func(r *Recipe) **int { return &r.ShelfLifeDays }),
	FieldEquipmentNeeded:        text(func(r *Recipe) *string { return &r.EquipmentNeeded }),
	FieldOriginCountry:          text(func(r *Recipe) *string { return &r.OriginCountry }),
	FieldRecipeCuisine:          text(func(r *Recipe) *string { return &r.RecipeCuisine }),
	FieldInYourBox:              text(func(r *Recipe) *string { return &r.InYourBox }),
	FieldRecipeReference:        text(func(r *Recipe) *string { return &r.RecipeReference }),
	FieldVotesCount:             counter(func(r *Recipe) *int { return &r.VotesCount }),
	FieldVotesSum:               counter(func(r *Recipe) *int { return &r.VotesSum }),
	FieldRatingValue:            float(func(r *Recipe) *float64 { return &r.RatingValue }),
}

func text[T ~string](p func(*Recipe) *T) column {
	return column{
		get: func(r *Recipe) string { return string(*p(r)) },
		set: func(r *Recipe, v string) error {
			*p(r) = T(lineEndings.Replace(v))
			return nil
		},
		text: true,
	}
}

// counter is a non-optional integer; an empty cell reads as 0.
func counter(p func(*Recipe) *int) column {
	return column{
		get: func(r *Recipe) string { return strconv.Itoa(*p(r)) },
		set: func(r *Recipe, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				*p(r) = 0
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			*p(r) = n
			return nil
		},
	}
}

func optionalInt(p func(*Recipe) **int) column {
	return column{
		get: func(r *Recipe) string {
			v := *p(r)
			if v == nil {
				return ""
			}
			return strconv.Itoa(*v)
		},
		set: func(r *Recipe, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				*p(r) = nil
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			*p(r) = ptr.To(n)
			return nil
		},
	}
}

func float(p func(*Recipe) *float64) column {
	return column{
		get: func(r *Recipe) string { return strconv.FormatFloat(*p(r), 'f', -1, 64) },
		set: func(r *Recipe, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				*p(r) = 0
				return nil
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", v)
			}
			*p(r) = f
			return nil
		},
	}
}

func timestamp(p func(*Recipe) *time.Time) column {
	return column{
		get: func(r *Recipe) string { return FormatTime(*p(r)) },
		set: func(r *Recipe, v string) error {
			t, err := ParseTime(v)
			if err != nil {
				return err
			}
			*p(r) = t
			return nil
		},
	}
}
