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
	"maps"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/nataliastanko/recipes-api/pkg/api"
	"github.com/nataliastanko/recipes-api/pkg/defaults"
	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
	"github.com/nataliastanko/recipes-api/pkg/recipe"
	"github.com/nataliastanko/recipes-api/pkg/serializer"
	"github.com/nataliastanko/recipes-api/pkg/store"
)

// Default table columns for list output.
var listColumns = []string{
	recipe.FieldID,
	recipe.FieldTitle,
	recipe.FieldRecipeCuisine,
	recipe.FieldBoxType,
	recipe.FieldRecipeDietTypeID,
	recipe.FieldRatingValue,
	recipe.FieldVotesCount,
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the recipes HTTP service",
		Description: `Start the HTTP service on the configured port. The storage file is
created with a header row when missing. The service stops gracefully on
SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port, overrides PORT",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := configFrom(ctx)
			if err != nil {
				return err
			}
			if cmd.IsSet("port") {
				cfg.Server.Port = int(cmd.Int("port"))
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return api.Serve(ctx, cfg)
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the storage file with a header row if it does not exist",
		Action: storeAction(func(ctx context.Context, _ *cli.Command, st *store.Store) error {
			created, err := st.Init(ctx)
			if err != nil {
				return err
			}
			if created {
				slog.Info("created storage file", "path", st.Path())
			} else {
				slog.Info("storage file already exists", "path", st.Path())
			}
			return nil
		}),
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List recipes",
		Description: `List recipes in id order. Filters match field values exactly and
case-sensitively; repeat --filter to combine them.

  recipes list --filter recipe_cuisine=asian --limit 5 --format table`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "offset",
				Value: defaults.ListOffset,
				Usage: "Number of recipes to skip",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: defaults.ListLimit,
				Usage: "Maximum number of recipes to return, negative for all",
			},
			&cli.StringSliceFlag{
				Name:  "filter",
				Usage: "Field filter (format: field=value, can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "columns",
				Usage: "Columns of table output (default: id, title, cuisine, box, diet, rating, votes)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: storeAction(func(ctx context.Context, cmd *cli.Command, st *store.Store) error {
			filters, err := parseFilters(cmd.StringSlice("filter"))
			if err != nil {
				return err
			}

			columns := cmd.StringSlice("columns")
			if len(columns) == 0 {
				columns = listColumns
			}
			for _, c := range columns {
				if !recipe.IsField(c) {
					return fmt.Errorf("unknown column %q, see 'recipes fields'", c)
				}
			}

			recs, err := st.List(ctx, int(cmd.Int("offset")), int(cmd.Int("limit")), filters)
			if err != nil {
				return err
			}
			if recs == nil {
				recs = []recipe.Recipe{}
			}

			return write(ctx, cmd, recs, serializer.WithColumns(columns...))
		}),
	}
}

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one recipe",
		ArgsUsage: "ID",
		Flags:     []cli.Flag{outputFlag(), formatFlag()},
		Action: storeAction(func(ctx context.Context, cmd *cli.Command, st *store.Store) error {
			id, err := argID(cmd, 0)
			if err != nil {
				return err
			}
			rec, found, err := st.Get(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				return apperrors.NewWithContext(apperrors.ErrCodeNotFound,
					"recipe not found", map[string]any{"id": id})
			}
			return write(ctx, cmd, rec)
		}),
	}
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Required: true,
		Usage:    "Recipe document (JSON or YAML by extension, - for JSON on stdin)",
	}
}

func createCmd() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a recipe from a JSON or YAML document",
		Description: `Create a recipe. The document is validated the same way the HTTP
service validates request bodies; id, timestamps and rating are assigned by
the store.

  recipes create -f chilli.yaml`,
		Flags: []cli.Flag{fileFlag(), outputFlag(), formatFlag()},
		Action: storeAction(func(ctx context.Context, cmd *cli.Command, st *store.Store) error {
			in, err := readRecipeFile(cmd.String("file"))
			if err != nil {
				return err
			}
			out, err := st.Create(ctx, in)
			if err != nil {
				return err
			}
			return write(ctx, cmd, out)
		}),
	}
}

func updateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Replace a recipe with a JSON or YAML document",
		ArgsUsage: "ID",
		Flags:     []cli.Flag{fileFlag(), outputFlag(), formatFlag()},
		Action: storeAction(func(ctx context.Context, cmd *cli.Command, st *store.Store) error {
			id, err := argID(cmd, 0)
			if err != nil {
				return err
			}
			in, err := readRecipeFile(cmd.String("file"))
			if err != nil {
				return err
			}
			out, err := st.Update(ctx, id, in)
			if err != nil {
				return err
			}
			return write(ctx, cmd, out)
		}),
	}
}

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a recipe",
		ArgsUsage: "ID",
		Flags:     []cli.Flag{outputFlag(), formatFlag()},
		Action: storeAction(func(ctx context.Context, cmd *cli.Command, st *store.Store) error {
			id, err := argID(cmd, 0)
			if err != nil {
				return err
			}
			deleted, err := st.Delete(ctx, id)
			if err != nil {
				return err
			}
			return write(ctx, cmd, recipe.DeleteResponse{Deleted: deleted})
		}),
	}
}

func voteCmd() *cli.Command {
	return &cli.Command{
		Name:      "vote",
		Usage:     "Record a vote from 1 to 5",
		ArgsUsage: "ID VOTE",
		Flags:     []cli.Flag{outputFlag(), formatFlag()},
		Action: storeAction(func(ctx context.Context, cmd *cli.Command, st *store.Store) error {
			id, err := argID(cmd, 0)
			if err != nil {
				return err
			}
			vote, err := recipe.ParseVote(cmd.Args().Get(1))
			if err != nil {
				return err
			}
			rec, err := st.Vote(ctx, id, vote)
			if err != nil {
				return err
			}
			return write(ctx, cmd, recipe.RatingOf(rec))
		}),
	}
}

func fieldsCmd() *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "Print the storage columns in order",
		Action: func(_ context.Context, cmd *cli.Command) error {
			for _, f := range recipe.Fields() {
				fmt.Fprintln(cmd.Root().Writer, f)
			}
			return nil
		},
	}
}

// storeAction opens the configured store and bounds the action by the store
// operation timeout.
func storeAction(fn func(context.Context, *cli.Command, *store.Store) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := configFrom(ctx)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, defaults.StoreOperationTimeout)
		defer cancel()

		return fn(ctx, cmd, store.New(cfg.StorageFile(), store.WithFilePerm(cfg.StorageFilePerm())))
	}
}

func argID(cmd *cli.Command, i int) (int, error) {
	if cmd.Args().Len() <= i {
		return 0, fmt.Errorf("missing recipe id, usage: %s %s", cmd.Name, cmd.ArgsUsage)
	}
	return recipe.ParseID(cmd.Args().Get(i))
}

// parseFilters turns field=value pairs into store filters.
func parseFilters(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter %q, expected field=value", p)
		}
		if !recipe.IsField(k) {
			return nil, fmt.Errorf("unknown filter field %q", k)
		}
		out[k] = v
	}
	return out, nil
}

// readRecipeFile decodes and validates a recipe document.
func readRecipeFile(path string) (recipe.Recipe, error) {
	r, err := serializer.NewFileReaderAuto(path)
	if err != nil {
		return recipe.Recipe{}, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			slog.Warn("failed to close reader", "error", err)
		}
	}()

	var p recipe.Payload
	if err := r.Deserialize(&p); err != nil {
		return recipe.Recipe{}, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"failed to read recipe document", err, map[string]any{"path": path})
	}
	return fromPayload(p)
}

// fromPayload applies the same allow-list and validation as the HTTP handlers.
func fromPayload(p recipe.Payload) (recipe.Recipe, error) {
	if p == nil {
		p = recipe.Payload{}
	}

	if extra := recipe.UnknownFields(p); len(extra) > 0 {
		return recipe.Recipe{}, apperrors.NewWithContext(apperrors.ErrCodeUnprocessable,
			"no extra fields allowed", map[string]any{"fields": extra})
	}
	if v := recipe.Validate(p); !v.Empty() {
		return recipe.Recipe{}, apperrors.NewWithContext(apperrors.ErrCodeUnprocessable,
			"validation failed: "+formatViolations(v), map[string]any{"violations": v})
	}
	return recipe.FromPayload(p)
}

func formatViolations(v recipe.Violations) string {
	keys := slices.Sorted(maps.Keys(v))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v[k], " "))
	}
	return strings.Join(parts, "; ")
}
