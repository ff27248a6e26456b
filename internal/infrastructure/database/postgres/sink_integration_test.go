//go:build integration

package postgres_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/internal/infrastructure/database/postgres"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// startPostgres launches a PostgreSQL 16 container and returns a migrated
// connection.
func startPostgres(t *testing.T) *postgres.Connection {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "ghscrunch_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	p, err := strconv.Atoi(port.Port())
	require.NoError(t, err)

	conn, err := postgres.NewConnection(ctx, config.PostgresConfig{
		Host: host, Port: p, User: "test", Password: "test", DBName: "ghscrunch_test", SSLMode: "disable",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.Migrate())
	return conn
}

func TestSink_RoundTrip(t *testing.T) {
	conn := startPostgres(t)
	ctx := context.Background()

	version, dirty, err := conn.MigrationStatus()
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
	assert.False(t, dirty)

	sink := postgres.NewSink(conn, nil)
	first := table.New("nz", "retained", "Identifier", "Name")
	first.Append("64-17-5", "Ethanol")
	first.Append("_v0_64-17-5", "Ethanol 40%")
	require.NoError(t, sink.Write(ctx, first))

	second := table.New("nz", "retained", "Identifier", "Name")
	second.Append("7732-18-5", "Water")
	require.NoError(t, sink.Write(ctx, second))

	var rows int
	require.NoError(t, conn.DB().QueryRowContext(ctx,
		`SELECT row_count FROM ghs_tables WHERE dataset = 'nz' AND name = 'retained'`).Scan(&rows))
	assert.Equal(t, 1, rows)

	var id string
	require.NoError(t, conn.DB().QueryRowContext(ctx,
		`SELECT cells ->> 0 FROM ghs_rows WHERE dataset = 'nz' AND name = 'retained' AND position = 0`).Scan(&id))
	assert.Equal(t, "7732-18-5", id)

	require.NoError(t, conn.Migrate(), "re-running migrations is a no-op")
}
