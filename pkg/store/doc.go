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

// Package store persists recipes in a single CSV file.
//
// The file is the only source of truth. Every operation re-reads it in full,
// and every mutation rewrites it in full, so no state is cached between calls:
//
//	s := store.New("storage/data_dev.csv")
//	r, err := s.Create(ctx, recipe.Recipe{Title: "Pasta", ...})
//	page, err := s.List(ctx, 0, 10, map[string]string{"recipe_cuisine": "italian"})
//
// # File format
//
// The first row is a header of schema field names. Rows are mapped to fields
// by that header, so column order in hand-edited files does not matter;
// unknown columns are ignored and missing ones take their zero value.
// Timestamps use the DD/MM/YYYY HH:MM:SS layout in UTC. Rewrites always emit
// the canonical column order, sorted ascending by id.
//
// A missing file is created with only a header row on first access.
//
// # Errors
//
// Failures are returned as *errors.StructuredError values whose cause wraps
// one of ErrStorageUnreadable, ErrMalformedRow or ErrNotFound, so both
// errors.Is and the HTTP error mapping work on them.
//
// # Concurrency
//
// A Store serializes its operations with a mutex held across the whole
// read-modify-write cycle. It does not guard against other processes writing
// the same file. Rewrites go through a temporary file and a rename, so a
// crash leaves either the old or the new content on disk.
package store
