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

import "slices"

// Record schema field names, in canonical column order.
const (
	FieldID                     = "id"
	FieldCreatedAt              = "created_at"
	FieldUpdatedAt              = "updated_at"
	FieldBoxType                = "box_type"
	FieldTitle                  = "title"
	FieldSlug                   = "slug"
	FieldShortTitle             = "short_title"
	FieldMarketingDescription   = "marketing_description"
	FieldCaloriesKcal           = "calories_kcal"
	FieldProteinGrams           = "protein_grams"
	FieldFatGrams               = "fat_grams"
	FieldCarbsGrams             = "carbs_grams"
	FieldBulletpoint1           = "bulletpoint1"
	FieldBulletpoint2           = "bulletpoint2"
	FieldBulletpoint3           = "bulletpoint3"
	FieldRecipeDietTypeID       = "recipe_diet_type_id"
	FieldSeason                 = "season"
	FieldBase                   = "base"
	FieldProteinSource          = "protein_source"
	FieldPreparationTimeMinutes = "preparation_time_minutes"
	FieldShelfLifeDays          = "shelf_life_days"
	FieldEquipmentNeeded        = "equipment_needed"
	FieldOriginCountry          = "origin_country"
	FieldRecipeCuisine          = "recipe_cuisine"
	FieldInYourBox              = "in_your_box"
	FieldRecipeReference        = "recipe_reference"
	FieldVotesCount             = "votes_count"
	FieldVotesSum               = "votes_sum"
	FieldRatingValue            = "rating_value"
)

var schema = []string{
	FieldID,
	FieldCreatedAt,
	FieldUpdatedAt,
	FieldBoxType,
	FieldTitle,
	FieldSlug,
	FieldShortTitle,
	FieldMarketingDescription,
	FieldCaloriesKcal,
	FieldProteinGrams,
	FieldFatGrams,
	FieldCarbsGrams,
	FieldBulletpoint1,
	FieldBulletpoint2,
	FieldBulletpoint3,
	FieldRecipeDietTypeID,
	FieldSeason,
	FieldBase,
	FieldProteinSource,
	FieldPreparationTimeMinutes,
	FieldShelfLifeDays,
	FieldEquipmentNeeded,
	FieldOriginCountry,
	FieldRecipeCuisine,
	FieldInYourBox,
	FieldRecipeReference,
	FieldVotesCount,
	FieldVotesSum,
	FieldRatingValue,
}

// Fields returns the record schema: every field name in canonical column order.
// The returned slice is a copy.
func Fields() []string {
	return slices.Clone(schema)
}

// IsField reports whether name belongs to the record schema.
func IsField(name string) bool {
	_, ok := columns[name]
	return ok
}
