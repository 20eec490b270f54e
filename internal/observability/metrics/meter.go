// Copyright 2026 The Jotdeck Authors
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

package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Config holds metrics configuration
type Config struct {
	Enabled bool
}

// Metrics holds the application instruments. All counters are created up
// front so handlers only ever call Add.
type Metrics struct {
	meter metric.Meter

	LoginSuccess   metric.Int64Counter
	LoginFailure   metric.Int64Counter
	NotesCreated   metric.Int64Counter
	QuotaRejected  metric.Int64Counter
	TenantUpgrades metric.Int64Counter
	UsersInvited   metric.Int64Counter
}

// New creates the application metrics. When disabled, instruments come
// from the global (noop) meter provider, so recording is free.
func New(ctx context.Context, cfg Config, serviceName string) (*Metrics, error) {
	name := serviceName
	if !cfg.Enabled {
		name = "noop"
	}
	meter := otel.Meter(name)

	m := &Metrics{meter: meter}

	var err error
	if m.LoginSuccess, err = counter(meter, "auth_login_success_total", "Successful logins"); err != nil {
		return nil, err
	}
	if m.LoginFailure, err = counter(meter, "auth_login_failure_total", "Failed login attempts"); err != nil {
		return nil, err
	}
	if m.NotesCreated, err = counter(meter, "notes_created_total", "Notes created"); err != nil {
		return nil, err
	}
	if m.QuotaRejected, err = counter(meter, "notes_quota_rejected_total", "Note creations rejected by the free-plan quota"); err != nil {
		return nil, err
	}
	if m.TenantUpgrades, err = counter(meter, "tenant_upgrades_total", "Tenant plan upgrades"); err != nil {
		return nil, err
	}
	if m.UsersInvited, err = counter(meter, "users_invited_total", "Users created through invitations"); err != nil {
		return nil, err
	}

	return m, nil
}

func counter(meter metric.Meter, name, description string) (metric.Int64Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return c, nil
}
