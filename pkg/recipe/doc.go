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

// Package recipe defines the recipe record and its HTTP handlers.
//
// # Record
//
// A Recipe is one row of the backing CSV file. The column layout is fixed by
// Fields(), and every field converts to and from its CSV text with Text and
// SetText:
//
//	r.Text(recipe.FieldCaloriesKcal)        // "401", or "" when unset
//	r.SetText(recipe.FieldCreatedAt, "30/06/2015 17:58:00")
//
// Timestamps are stored in UTC using the DD/MM/YYYY HH:MM:SS layout.
//
// # Validation
//
// Request bodies are decoded into a Payload and checked before they become a
// Recipe:
//
//	if extra := recipe.UnknownFields(p); len(extra) > 0 { ... }
//	if v := recipe.Validate(p); !v.Empty() { ... }
//	r, err := recipe.FromPayload(p)
//
// Required fields are title, recipe_cuisine, marketing_description, box_type
// and recipe_diet_type_id. box_type must be one of gourmet or vegetarian and
// recipe_diet_type_id one of fish, meat or vegetarian. Nutrition, preparation
// time and shelf life must be integers when present.
//
// # Rating
//
// Votes are integers from 1 to 5. ApplyVote adds a vote and recomputes
// RatingValue as the mean of all votes.
//
// # HTTP
//
// Handler serves the REST surface over any Repository:
//
//	GET    /recipes                       list (offset, limit, recipe_cuisine)
//	GET    /recipes/{id}                  fetch one
//	POST   /recipes                       create
//	PUT    /recipes/{id}                  replace
//	DELETE /recipes/{id}                  delete
//	POST   /recipes/{id}/rating/{vote}    vote
//
// Bodies may be JSON objects or URL-encoded forms.
package recipe
