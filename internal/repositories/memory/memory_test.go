package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogStore_RoundTripPreservesOrderAndFields(t *testing.T) {
	ctx := context.Background()
	store := NewLogStore()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	var want []domain.LogRecord
	for i := 0; i < 20; i++ {
		rec := domain.NewEntryRecord("1234", base.Add(time.Duration(i)*time.Second))
		if i%2 == 1 {
			rec = domain.NewExitRecord("1234", base.Add(time.Duration(i)*time.Second), int64(i), decimal.NewFromInt(int64(i*10)))
		}
		recID, err := store.Append(ctx, rec)
		require.NoError(t, err)
		rec.RecordID = recID
		want = append(want, rec)
	}

	got, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].RecordID, got[i].RecordID)
	}
}

func TestLogStore_RecordsAreImmutable(t *testing.T) {
	ctx := context.Background()
	store := NewLogStore()
	at := time.Date(2025, 6, 1, 10, 8, 0, 0, time.UTC)

	rec := domain.NewExitRecord("4821", at, 8, decimal.NewFromInt(80))
	_, err := store.Append(ctx, rec)
	require.NoError(t, err)

	// Mutating the appended value must not reach the store.
	*rec.DurationMinutes = 1
	*rec.Amount = decimal.NewFromInt(1)

	first, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	*first[0].DurationMinutes = 999
	*first[0].Amount = decimal.NewFromInt(-5)

	second, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, int64(8), *second[0].DurationMinutes)
	assert.True(t, decimal.NewFromInt(80).Equal(*second[0].Amount))
}

func TestLogStore_RejectsMalformedAndDeletes(t *testing.T) {
	ctx := context.Background()
	store := NewLogStore()

	_, err := store.Append(ctx, domain.LogRecord{EventType: domain.EventEntry, Pin: "12"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = store.Append(ctx, domain.NewEntryRecord("1234", time.Now()))
	require.NoError(t, err)

	require.NoError(t, store.DeleteAll(ctx))
	got, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLogStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewLogStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Append(ctx, domain.NewEntryRecord("5555", time.Now()))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 100)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.SaveUser(ctx, domain.User{UserID: "u1", Email: "Ops@Example.com", AuthProvider: domain.ProviderLocal}))
	err := repo.SaveUser(ctx, domain.User{UserID: "u2", Email: "ops@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	u, err := repo.FindUserByEmail(ctx, "OPS@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)

	expiry := time.Now().Add(time.Hour)
	require.NoError(t, repo.UpdateRefreshToken(ctx, "u1", "hash", expiry))
	u, _ = repo.FindUserByID(ctx, "u1")
	assert.Equal(t, "hash", u.RefreshTokenHash)

	require.NoError(t, repo.ClearRefreshToken(ctx, "u1"))
	u, _ = repo.FindUserByID(ctx, "u1")
	assert.Empty(t, u.RefreshTokenHash)
	assert.Nil(t, u.RefreshTokenExpiryTime)

	assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, "missing", "x", time.Now()), apperrors.ErrNotFound)
}

func TestPasswordResetRepository_SingleUse(t *testing.T) {
	ctx := context.Background()
	repo := NewPasswordResetRepository()
	now := time.Now()

	require.NoError(t, repo.SaveResetToken(ctx, domain.PasswordResetToken{TokenHash: "h", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.MarkResetTokenUsed(ctx, "h", now))
	assert.ErrorIs(t, repo.MarkResetTokenUsed(ctx, "h", now), apperrors.ErrNotFound)
}

func TestAPITokenRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewAPITokenRepository()

	tok := &domain.APIToken{UserID: "u1", Name: "gate-1", TokenHash: "abc"}
	require.NoError(t, repo.Create(ctx, tok))
	assert.NotEmpty(t, tok.ID)

	found, err := repo.FindByHash(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, tok.ID, found.ID)

	require.NoError(t, repo.Delete(ctx, tok.ID))
	_, err = repo.FindByHash(ctx, "abc")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, tok.ID), apperrors.ErrNotFound)
}
