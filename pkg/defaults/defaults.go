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

package defaults

import "time"

const (
	// RecipeHandlerTimeout is the timeout for recipe API requests.
	RecipeHandlerTimeout = 30 * time.Second

	// StoreOperationTimeout bounds a single read-modify-write cycle on the
	// backing file. Should be less than RecipeHandlerTimeout to allow error handling.
	StoreOperationTimeout = 25 * time.Second
)

const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ReadinessCheckTimeout bounds all readiness checks of one /ready probe.
	ReadinessCheckTimeout = 2 * time.Second
)

const (
	// ListOffset is the offset used when a list request omits it.
	ListOffset = 0

	// ListLimit is the page size used when a list request omits it.
	ListLimit = 10

	// MaxRequestBodyBytes caps create and update payloads.
	MaxRequestBodyBytes = 1 << 20 // 1MB
)

const (
	// Environment is the deployment environment used when none is configured.
	Environment = "dev"

	// StorageDir is the directory holding per-environment storage files.
	StorageDir = "storage"

	// StorageFilePerm is the permission used for newly created storage files.
	StorageFilePerm = 0o644
)
