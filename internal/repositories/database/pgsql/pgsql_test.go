package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow feeds fixed column values to Scan the way pgx does: sql.Scanner
// destinations get the raw value, everything else is assigned directly.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		if scanner, ok := d.(sql.Scanner); ok {
			if err := scanner.Scan(r.values[i]); err != nil {
				return err
			}
			continue
		}
		target := reflect.ValueOf(d).Elem()
		if r.values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func TestScanLogRecord(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 8, 0, 0, time.UTC)
	minutes := int64(8)

	t.Run("exit with amount", func(t *testing.T) {
		m, err := scanLogRecord(fakeRow{values: []any{"01J0", "CIKIS", "4821", at, &minutes, "0.875"}})
		require.NoError(t, err)

		assert.Equal(t, "01J0", m.RecordID)
		assert.Equal(t, "CIKIS", m.EventType)
		assert.Equal(t, at, m.Timestamp)
		require.NotNil(t, m.DurationMinutes)
		assert.Equal(t, int64(8), *m.DurationMinutes)
		require.NotNil(t, m.Amount)
		assert.Equal(t, "0.875", m.Amount.String())
	})

	t.Run("entry with null columns", func(t *testing.T) {
		m, err := scanLogRecord(fakeRow{values: []any{"01J1", "GIRIS", "4821", at, nil, nil}})
		require.NoError(t, err)

		assert.Nil(t, m.DurationMinutes)
		assert.Nil(t, m.Amount)
	})

	t.Run("scan error", func(t *testing.T) {
		_, err := scanLogRecord(fakeRow{err: errors.New("conn reset")})
		assert.EqualError(t, err, "conn reset")
	})
}

// openTestPool connects to PGSQL_TEST_URL and applies the migrations.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	_, err := database.RunMigrations(url, "file://../../../../migrations", slog.Default())
	require.NoError(t, err)

	pool, err := database.NewPgxPool(context.Background(), url, true)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })
	return pool
}

// openTestRepository returns a log store whose table is wiped before and
// after the test.
func openTestRepository(t *testing.T) *PgxLogRepository {
	t.Helper()
	repo := NewLogRepository(openTestPool(t))
	require.NoError(t, repo.DeleteAll(context.Background()))
	t.Cleanup(func() { _ = repo.DeleteAll(context.Background()) })
	return repo
}

func TestPgxLogRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepository(t)
	at := time.Date(2025, 6, 1, 10, 0, 0, 123000000, time.UTC)

	entryID, err := repo.Append(ctx, domain.NewEntryRecord("4821", at))
	require.NoError(t, err)
	exitID, err := repo.Append(ctx, domain.NewExitRecord("4821", at.Add(7*time.Minute), 7, decimal.RequireFromString("0.875")))
	require.NoError(t, err)

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, entryID, records[0].RecordID)
	assert.True(t, records[0].IsEntry())
	assert.True(t, at.Equal(records[0].Timestamp))
	assert.Nil(t, records[0].Amount)

	assert.Equal(t, exitID, records[1].RecordID)
	assert.True(t, records[1].IsExit())
	require.NotNil(t, records[1].Amount)
	assert.Equal(t, "0.875", records[1].Amount.String())
	assert.Equal(t, int64(7), *records[1].DurationMinutes)
}

func TestPgxLogRepository_OrderAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepository(t)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 5; i++ {
		recID, err := repo.Append(ctx, domain.NewEntryRecord("1000", base.Add(-time.Duration(i)*time.Minute)))
		require.NoError(t, err)
		ids = append(ids, recID)
	}

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, rec := range records {
		assert.Equal(t, ids[i], rec.RecordID)
	}

	require.NoError(t, repo.DeleteAll(ctx))
	records, err = repo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPgxLogRepository_RejectsMalformed(t *testing.T) {
	repo := NewLogRepository(nil)

	_, err := repo.Append(context.Background(), domain.NewEntryRecord("12", time.Now()))
	assert.Error(t, err)
}

func TestScanUser_NoRows(t *testing.T) {
	_, err := scanUser(fakeRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPgxUserRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	pool := openTestPool(t)
	repo := newPgxUserRepository(pool)

	userID := uuid.NewString()
	email := "gate-" + userID[:8] + "@parkmate.app"
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), "DELETE FROM users WHERE user_id = $1", userID) })

	hash := "$2a$10$abcdefghijklmnopqrstuv"
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		UserID:       userID,
		Email:        email,
		Name:         "Gate",
		PasswordHash: &hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	require.NoError(t, repo.SaveUser(ctx, user))

	found, err := repo.FindUserByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)
	require.NotNil(t, found.PasswordHash)
	assert.Equal(t, hash, *found.PasswordHash)

	err = repo.SaveUser(ctx, user)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = repo.FindUserByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
