package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection
// pool with the documents table in place.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, EnsureSchema(ctx, pool))

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func TestPostgresRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	exerciseRepository(t, NewPostgresRepository(pool, "spc_db", zerolog.Nop()))

	// Saves replace the single row
	var rows int
	err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM store_documents`).Scan(&rows)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
}

func TestPostgresRepository_KeysAreIndependent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	first := NewPostgresRepository(pool, "first", zerolog.Nop())
	second := NewPostgresRepository(pool, "second", zerolog.Nop())

	require.NoError(t, first.Save(ctx, sampleDocument()))

	_, err := second.Load(ctx)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestPostgresRepository_Corrupt(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO store_documents (key, body) VALUES ('spc_db', '{"users": [')`)
	require.NoError(t, err)

	_, err = NewPostgresRepository(pool, "spc_db", zerolog.Nop()).Load(ctx)
	assert.ErrorIs(t, err, ErrDocumentCorrupt)
}

func TestPostgresRepository_ErrorPaths(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	ctx := context.Background()

	repo := NewPostgresRepository(pool, "spc_db", zerolog.Nop())

	// Close the pool to force errors
	cleanup()

	_, err := repo.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query document")

	err = repo.Save(ctx, sampleDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save document")
}
