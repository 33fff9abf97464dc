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

// Package defaults provides centralized configuration constants for the recipes API.
//
// Timeouts, pagination defaults and storage defaults live here so the server,
// the store and the CLI agree on them.
//
//	ctx, cancel := context.WithTimeout(r.Context(), defaults.RecipeHandlerTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - HTTP handlers: 30s per request
//   - Store operations: 25s, below the handler timeout so errors can still be written
//   - Server shutdown: 30s for graceful shutdown
package defaults
