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
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/nataliastanko/recipes-api/pkg/recipe"
)

// rowError describes a row that could not be decoded.
type rowError struct {
	row   int
	field string
	err   error
}

func (e *rowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.row, e.err)
}

func (e *rowError) Unwrap() error { return e.err }

// decode reads a CSV document with a header row into recipes.
// Row numbers in errors are 1-based and count the header.
func decode(r io.Reader) ([]recipe.Recipe, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var out []recipe.Recipe
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &rowError{row: line, err: err}
		}
		if len(row) != len(header) {
			return nil, &rowError{
				row: line,
				err: fmt.Errorf("expected %d columns, got %d", len(header), len(row)),
			}
		}

		var rec recipe.Recipe
		for i, name := range header {
			if !recipe.IsField(name) {
				continue
			}
			if err := rec.SetText(name, row[i]); err != nil {
				return nil, &rowError{row: line, field: name, err: err}
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// encode writes recipes as CSV in canonical column order, preceded by a header row.
func encode(w io.Writer, recs []recipe.Recipe) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recipe.Fields()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range recs {
		if err := cw.Write(recs[i].Values()); err != nil {
			return fmt.Errorf("write row for id %d: %w", recs[i].ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
