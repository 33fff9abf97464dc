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
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Name != DefaultName {
		t.Errorf("expected name %q, got %q", DefaultName, cfg.Name)
	}
	if cfg.Address != "" {
		t.Errorf("expected empty address, got %s", cfg.Address)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.RateLimit != 100 || cfg.RateLimitBurst != 200 {
		t.Errorf("expected rate limit 100/200, got %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
	}
	if cfg.CORSAllowOrigin != "*" {
		t.Errorf("expected CORS origin *, got %q", cfg.CORSAllowOrigin)
	}

	timeouts := map[string]struct{ got, want time.Duration }{
		"read":        {cfg.ReadTimeout, 10 * time.Second},
		"read header": {cfg.ReadHeaderTimeout, 5 * time.Second},
		"write":       {cfg.WriteTimeout, 30 * time.Second},
		"idle":        {cfg.IdleTimeout, 120 * time.Second},
		"shutdown":    {cfg.ShutdownTimeout, 30 * time.Second},
	}
	for name, tt := range timeouts {
		if tt.got != tt.want {
			t.Errorf("expected %s timeout %v, got %v", name, tt.want, tt.got)
		}
	}
}
