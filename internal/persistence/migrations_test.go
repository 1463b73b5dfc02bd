package persistence

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingExecutor struct {
	statements []string
	failOn     string
}

func (r *recordingExecutor) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if r.failOn != "" && strings.Contains(sql, r.failOn) {
		return pgconn.CommandTag{}, errors.New("exec failed")
	}
	r.statements = append(r.statements, sql)
	return pgconn.CommandTag{}, nil
}

func TestRunMigrationsAppliesInOrder(t *testing.T) {
	exec := &recordingExecutor{}
	require.NoError(t, RunMigrations(context.Background(), exec, zap.NewNop()))

	require.Len(t, exec.statements, 2)
	assert.Contains(t, exec.statements[0], "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, exec.statements[1], "CREATE TABLE IF NOT EXISTS animals")
	assert.Contains(t, exec.statements[1], "GENERATED ALWAYS AS (sacrificed_at IS NOT NULL)")
}

func TestRunMigrationsStopsOnError(t *testing.T) {
	exec := &recordingExecutor{failOn: "animals"}
	err := RunMigrations(context.Background(), exec, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0002_animals.sql")
	assert.Len(t, exec.statements, 1)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestDisabledClients(t *testing.T) {
	var pg *Postgres
	assert.False(t, pg.Enabled())
	assert.Error(t, pg.Ping(context.Background()))
	assert.Nil(t, pg.PoolHandle())

	r := &Redis{}
	assert.False(t, r.Enabled())
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}
