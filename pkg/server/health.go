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

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nataliastanko/recipes-api/pkg/defaults"
	"github.com/nataliastanko/recipes-api/pkg/serializer"
)

// Probe statuses.
const (
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	checkOK        = "ok"
)

// ReadinessCheck reports whether a dependency of the service can be used.
// A nil error means ready.
type ReadinessCheck func(ctx context.Context) error

// HealthResponse is the body of the /health and /ready probes.
type HealthResponse struct {
	Status    string            `json:"status" yaml:"status"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	Uptime    string            `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Reason    string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Checks    map[string]string `json:"checks,omitempty" yaml:"checks,omitempty"`
}

// handleHealth is the liveness probe. It never consults readiness checks.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	now := time.Now()
	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    StatusHealthy,
		Timestamp: now.UTC(),
		Uptime:    now.Sub(s.started).Truncate(time.Second).String(),
	})
}

// handleReady is the readiness probe: 503 until the listener is up and
// whenever a registered check fails.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Timestamp: time.Now().UTC()}

	if !s.isReady() {
		resp.Status = StatusNotReady
		resp.Reason = "service is initializing"
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	checks, ok := s.runChecks(r.Context())
	resp.Checks = checks
	if !ok {
		resp.Status = StatusNotReady
		resp.Reason = "readiness check failed"
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.Status = StatusReady
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// runChecks runs every readiness check under one shared timeout and returns
// the outcome per check name.
func (s *Server) runChecks(ctx context.Context) (map[string]string, bool) {
	if len(s.checks) == 0 {
		return nil, true
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ReadinessCheckTimeout)
	defer cancel()

	out := make(map[string]string, len(s.checks))
	ok := true
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			slog.Warn("readiness check failed", "check", name, "error", err)
			readinessFailures.WithLabelValues(name).Inc()
			out[name] = err.Error()
			ok = false
			continue
		}
		out[name] = checkOK
	}
	return out, ok
}
