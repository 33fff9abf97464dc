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

// Package cli implements the recipes command-line interface.
//
// # Commands
//
// serve - Run the HTTP service:
//
//	recipes serve --port 8080
//
// init - Create the storage file with its header row:
//
//	recipes --env prod init
//
// list, get - Read recipes from the storage file:
//
//	recipes list --filter recipe_cuisine=asian --limit 5 --format table
//	recipes get --format json 3
//
// create, update, delete - Modify recipes. Documents are JSON or YAML and are
// validated exactly like HTTP request bodies:
//
//	recipes create -f chilli.yaml
//	recipes update -f chilli.json 3
//	recipes delete 3
//
// vote - Record a vote from 1 to 5 and print the new rating:
//
//	recipes vote 3 5
//
// fields - Print the storage columns in order.
//
// # Global Flags
//
//	--config       YAML configuration file
//	--env-file     dotenv file (default .env, ignored when missing)
//	--env          Environment: dev, test, prod
//	--storage, -s  CSV storage file, overrides <storage-dir>/data_<env>.csv
//	--log-level    Log level: debug, info, warn, error
//
// Commands that print data also accept:
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, validation, storage failure)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/nataliastanko/recipes-api/pkg/cli.version=1.0.0'"
package cli
