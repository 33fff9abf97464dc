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

// Package errors provides structured errors for the recipes API.
//
// A StructuredError pairs a machine-readable ErrorCode with a message, an
// optional cause and optional context. The HTTP layer maps codes to status
// codes (see server.HTTPStatusFromCode), so storage and validation code never
// decide response statuses themselves.
//
//	if !found {
//	    return errors.NewWithContext(errors.ErrCodeNotFound, "recipe not found",
//	        map[string]any{"id": id})
//	}
//
// Causes are preserved for errors.Is and errors.As:
//
//	err := errors.Wrap(errors.ErrCodeInternal, "failed to read storage", ioErr)
//	errors.Is(err, ioErr) // true
package errors
