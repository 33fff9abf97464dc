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

// Package api wires the recipes HTTP service together.
//
// Serve is the entry point used by the recipesd binary:
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/nataliastanko/recipes-api/pkg/api"
//	    "github.com/nataliastanko/recipes-api/pkg/config"
//	)
//
//	func main() {
//	    cfg, err := config.Load("", config.DefaultEnvFile)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := api.Serve(context.Background(), cfg); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging for the environment
//   - Creating the CSV store and its backing file
//   - Registering the recipe routes
//   - Delegating server lifecycle management to pkg/server
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET    /recipes                       - List recipes (offset, limit, recipe_cuisine)
//   - POST   /recipes                       - Create a recipe
//   - GET    /recipes/{id}                  - Fetch a recipe
//   - PUT    /recipes/{id}                  - Replace a recipe
//   - DELETE /recipes/{id}                  - Delete a recipe
//   - POST   /recipes/{id}/rating/{vote}    - Vote 1 to 5
//
// System endpoints:
//   - GET /        - Service index
//   - GET /health  - Liveness probe
//   - GET /ready   - Readiness probe
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl -s "http://localhost:8080/recipes?recipe_cuisine=asian&limit=5"
package api
