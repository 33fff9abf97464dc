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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
	"github.com/nataliastanko/recipes-api/pkg/header"
	"github.com/nataliastanko/recipes-api/pkg/recipe"
	"github.com/nataliastanko/recipes-api/pkg/serializer"
	"github.com/nataliastanko/recipes-api/pkg/store"
)

// exportDocument is the RecipeList document written by export.
type exportDocument struct {
	header.Header `json:",inline" yaml:",inline"`
	Items         []recipe.Recipe `json:"items" yaml:"items"`
}

// importDocument is the RecipeList document read by import. Items stay
// untyped until validated.
type importDocument struct {
	header.Header `json:",inline" yaml:",inline"`
	Items         []recipe.Payload `json:"items" yaml:"items"`
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write all recipes as a RecipeList document",
		Description: `Export every recipe, optionally filtered, as a JSON or YAML RecipeList
document that import can load into another storage file.

  recipes --env prod export -o recipes.yaml`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "filter",
				Usage: "Field filter (format: field=value, can be repeated)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: storeAction(func(ctx context.Context, cmd *cli.Command, st *store.Store) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			if format == serializer.FormatTable {
				return fmt.Errorf("export supports %s and %s only", serializer.FormatJSON, serializer.FormatYAML)
			}

			filters, err := parseFilters(cmd.StringSlice("filter"))
			if err != nil {
				return err
			}
			recs, err := st.List(ctx, 0, -1, filters)
			if err != nil {
				return err
			}
			if recs == nil {
				recs = []recipe.Recipe{}
			}

			cfg, err := configFrom(ctx)
			if err != nil {
				return err
			}
			doc := exportDocument{
				Header: header.New(header.KindRecipeList, version,
					header.WithMetadata("env", cfg.Env),
					header.WithMetadata("count", fmt.Sprint(len(recs))),
				),
				Items: recs,
			}
			return write(ctx, cmd, doc)
		}),
	}
}

func importCmd() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Create recipes from a RecipeList document",
		Description: `Import the items of a RecipeList document. Every item is validated
before anything is written; ids, timestamps and ratings are assigned by the
target store, vote counters are kept.

  recipes --env test import -f recipes.yaml`,
		Flags: []cli.Flag{fileFlag(), outputFlag(), formatFlag()},
		Action: storeAction(func(ctx context.Context, cmd *cli.Command, st *store.Store) error {
			recs, err := readImportFile(cmd.String("file"))
			if err != nil {
				return err
			}

			created := make([]recipe.Recipe, 0, len(recs))
			for _, r := range recs {
				out, err := st.Create(ctx, r)
				if err != nil {
					return err
				}
				created = append(created, out)
			}
			slog.Info("imported recipes", "count", len(created), "path", st.Path())

			return write(ctx, cmd, created, serializer.WithColumns(listColumns...))
		}),
	}
}

// readImportFile decodes a RecipeList document and validates every item.
func readImportFile(path string) ([]recipe.Recipe, error) {
	r, err := serializer.NewFileReaderAuto(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			slog.Warn("failed to close reader", "error", err)
		}
	}()

	var doc importDocument
	if err := r.Deserialize(&doc); err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"failed to read import document", err, map[string]any{"path": path})
	}
	if err := doc.Check(header.KindRecipeList); err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid import document", err, map[string]any{"path": path})
	}

	out := make([]recipe.Recipe, 0, len(doc.Items))
	for i, p := range doc.Items {
		rec, err := fromPayload(p)
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeUnprocessable,
				fmt.Sprintf("item %d is invalid", i), err, map[string]any{"item": i})
		}
		out = append(out, rec)
	}
	return out, nil
}
