//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"hotel-reservations/internal/infra/db"
	"hotel-reservations/internal/pkg/config"
	"hotel-reservations/migrations"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	containerOnce sync.Once
	container     testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

// NewPool starts the shared postgres container, creates a database unique to
// the calling test, and applies the schema. The database is dropped on
// cleanup; the container is shared across tests in the process.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	host, port := startPostgresOnce(t)
	dbName := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, host, port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			return
		}
		defer cleanupPool.Close()
		_, _ = cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName)
	})

	cfg := config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
	}

	pool, closePool, err := db.Connect(ctx, cfg)
	require.NoError(t, err, "test database connection failed")
	t.Cleanup(closePool)

	require.NoError(t, migrations.Apply(ctx, pool), "failed to apply schema")
	return pool
}

func startPostgresOnce(t *testing.T) (string, nat.Port) {
	t.Helper()

	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=256m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
		}

		var err error
		container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start postgres container")
	})

	ctx := context.Background()
	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)
	return host, mappedPort
}

// CreateTestRoom inserts an active room and returns its id.
func CreateTestRoom(t *testing.T, pool *pgxpool.Pool, hotelID uuid.UUID, number, roomType string, nightlyCents int64) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	_, err := pool.Exec(context.Background(), `
INSERT INTO rooms (id, hotel_id, number, type, floor, max_guests, base_nightly_cents, active)
VALUES ($1, $2, $3, $4, 1, 2, $5, TRUE)`,
		roomID, hotelID, number, roomType, nightlyCents,
	)
	require.NoError(t, err)
	return roomID
}

// CreateTestCustomer inserts an active customer and returns its id.
func CreateTestCustomer(t *testing.T, pool *pgxpool.Pool, email string) uuid.UUID {
	t.Helper()

	customerID := uuid.New()
	_, err := pool.Exec(context.Background(), `
INSERT INTO customers (id, email, full_name, active)
VALUES ($1, $2, 'Test Guest', TRUE)`,
		customerID, email,
	)
	require.NoError(t, err)
	return customerID
}
