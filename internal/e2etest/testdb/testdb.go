//go:build integration

// Package testdb starts a disposable Postgres for service tests that
// need a real database.
package testdb

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const startupTimeout = 2 * time.Minute

type TestDBInstance struct {
	DSN       string
	container *postgres.PostgresContainer
}

func NewTestDBInstance() (*TestDBInstance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("dibek"),
		postgres.WithUsername("dibek"),
		postgres.WithPassword("dibek"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}

	return &TestDBInstance{
		DSN:       dsn,
		container: container,
	}, nil
}

func (t *TestDBInstance) Down() {
	if t.container != nil {
		_ = t.container.Terminate(context.Background())
	}
}
