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

// Package server provides the HTTP server shared by the recipes API.
//
// # Architecture
//
// Handlers are registered by http.ServeMux pattern and wrapped by a common
// middleware chain:
//
//   - Prometheus RED metrics labelled by route pattern
//   - API version negotiation (Accept: application/vnd.recipes.v1+json)
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Debug request logging
//
// CORS headers are set on every response, and OPTIONS preflight requests are
// answered before routing.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("recipes-api"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /recipes/{id}": h.HandleGet,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until SIGINT, SIGTERM or context cancellation and then drains
// in-flight requests for up to Config.ShutdownTimeout.
//
// # System Endpoints
//
//	GET /         service name, version, readiness and route list
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until the listener is up or while a
//	              registered ReadinessCheck fails
//	GET /metrics  Prometheus exposition
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorFromErr, which emit
//
//	{"code": "...", "message": "...", "details": {...},
//	 "requestId": "...", "timestamp": "...", "retryable": false}
//
// Structured error codes map to HTTP status via HTTPStatusFromCode.
package server
