package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sobres/envelope-planner/internal/domain"
)

func openTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	period := domain.Period{Year: 2026, Month: time.March}

	cfg := domain.DefaultLegalConfig(2026)
	cfg.SeguroPercentage = decimal.NewFromFloat(11.5)
	require.NoError(t, s.Save(ctx, period, cfg))

	got, ok, err := s.Get(ctx, period)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.SeguroPercentage.Equal(decimal.NewFromFloat(11.5)))
	require.Len(t, got.TaxBrackets, 5)
	assert.True(t, got.TaxBrackets[4].Unbounded(), "nil max amount must survive the round trip")
	assert.True(t, got.TaxBrackets[1].MinAmount.Equal(decimal.NewFromInt(918000)))
}

func TestSaveIsLastWriterWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	period := domain.Period{Year: 2026, Month: time.March}

	first := domain.DefaultLegalConfig(2026)
	first.SeguroPercentage = decimal.NewFromInt(9)
	require.NoError(t, s.Save(ctx, period, first))

	second := domain.DefaultLegalConfig(2026)
	second.SeguroPercentage = decimal.NewFromInt(12)
	require.NoError(t, s.Save(ctx, period, second))

	got, ok, err := s.Get(ctx, period)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.SeguroPercentage.Equal(decimal.NewFromInt(12)))
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	s := openTestStore(t)
	period := domain.Period{Year: 2026, Month: time.March}

	bad := domain.DefaultLegalConfig(2026)
	bad.TaxBrackets = bad.TaxBrackets[:1]

	err := s.Save(context.Background(), period, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBracketFloor)
}

func TestResolveFallsBackToDefault(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cfg, err := s.Resolve(ctx, domain.Period{Year: 2025, Month: time.January})
	require.NoError(t, err)
	assert.True(t, cfg.TaxBrackets[1].MinAmount.Equal(decimal.NewFromInt(863000)),
		"missing pre-2026 period resolves to the 2025 preset")

	cfg, err = s.Resolve(ctx, domain.Period{Year: 2027, Month: time.January})
	require.NoError(t, err)
	assert.True(t, cfg.TaxBrackets[1].MinAmount.Equal(decimal.NewFromInt(918000)),
		"missing 2026+ period resolves to the 2026 preset")
}

func TestDeleteRevertsToDefault(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	period := domain.Period{Year: 2026, Month: time.May}

	cfg := domain.DefaultLegalConfig(2026)
	cfg.SeguroPercentage = decimal.NewFromInt(8)
	require.NoError(t, s.Save(ctx, period, cfg))
	require.NoError(t, s.Delete(ctx, period))

	resolved, err := s.Resolve(ctx, period)
	require.NoError(t, err)
	assert.True(t, resolved.SeguroPercentage.Equal(domain.DefaultSeguroPercentage))

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(ctx, period))
}

func TestListPeriods(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, domain.Period{Year: 2026, Month: time.December}, domain.DefaultLegalConfig(2026)))
	require.NoError(t, s.Save(ctx, domain.Period{Year: 2026, Month: time.February}, domain.DefaultLegalConfig(2026)))

	periods, err := s.ListPeriods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02", "2026-12"}, periods)
}
