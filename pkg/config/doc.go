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

// Package config loads the recipes service configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. built-in defaults (Default)
//  2. an optional YAML file
//  3. an optional .env file (variables already set in the process win)
//  4. environment variables
//  5. command-line flags, applied by the caller
//
// Recognized environment variables:
//
//	RECIPES_ENV                 dev, test or prod (default dev)
//	RECIPES_STORAGE_DIR         directory of data_<env>.csv (default storage)
//	RECIPES_STORAGE_PATH        explicit CSV path, overrides the directory
//	PORT                        HTTP port (default 8080)
//	LOG_LEVEL                   debug, info, warn or error
//	SHUTDOWN_TIMEOUT_SECONDS    graceful shutdown window
//	RECIPES_CORS_ALLOW_ORIGIN   Access-Control-Allow-Origin value (default *)
//	RECIPES_RATE_LIMIT          requests per second
//	RECIPES_RATE_LIMIT_BURST    token bucket size
//
// When no log level is configured the environment picks one: debug for dev
// and test, error for prod.
package config
