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

package api

import (
	"context"
	"log/slog"

	"github.com/nataliastanko/recipes-api/pkg/config"
	"github.com/nataliastanko/recipes-api/pkg/logging"
	"github.com/nataliastanko/recipes-api/pkg/recipe"
	"github.com/nataliastanko/recipes-api/pkg/server"
	"github.com/nataliastanko/recipes-api/pkg/store"
)

const (
	name           = "recipesd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/nataliastanko/recipes-api/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// NewServer prepares the backing file for cfg and returns a server with the
// recipe routes registered. The server is not started.
func NewServer(ctx context.Context, cfg *config.Config) (*server.Server, error) {
	st := store.New(cfg.StorageFile(), store.WithFilePerm(cfg.StorageFilePerm()))

	created, err := st.Init(ctx)
	if err != nil {
		return nil, err
	}
	if created {
		slog.Info("created storage file", "path", st.Path())
	}

	h := recipe.NewHandler(st)

	return server.New(
		server.WithConfig(cfg.ServerConfig(name, version)),
		server.WithHandler(h.Routes()),
		server.WithReadinessCheck("storage", st.Ping),
	), nil
}

// Serve runs the recipes service until ctx is canceled or the process
// receives SIGINT or SIGTERM.
func Serve(ctx context.Context, cfg *config.Config) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.EffectiveLogLevel())
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"env", cfg.Env,
		"storage", cfg.StorageFile(),
	)

	s, err := NewServer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize server", "error", err)
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
