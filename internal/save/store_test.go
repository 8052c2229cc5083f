package save

import (
	"context"
	"path/filepath"
	"testing"

	"pennant/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	st, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "pennant.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testState(t *testing.T) *game.State {
	t.Helper()
	s, err := game.NewState(game.NewRand(1), game.LeagueTeams()[0].ID)
	require.NoError(t, err)
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	state := testState(t)

	_, err := st.Load(ctx, DefaultSlot)
	require.ErrorIs(t, err, game.ErrSaveNotFound)

	require.NoError(t, st.Save(ctx, DefaultSlot, state))

	got, err := st.Load(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, state.UserTeamID, got.UserTeamID)
	assert.Equal(t, state.SeasonYear, got.SeasonYear)
	assert.Equal(t, state.Week, got.Week)
	assert.Len(t, got.Schedule, len(state.Schedule))
	assert.Equal(t, state.Finances[state.UserTeamID].Budget, got.Finances[got.UserTeamID].Budget)

	// Saving again overwrites in place.
	state.Week = 7
	require.NoError(t, st.Save(ctx, DefaultSlot, state))
	got, err = st.Load(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Week)
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	state := testState(t)

	slots, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, slots)

	require.NoError(t, st.Save(ctx, "alpha", state))
	require.NoError(t, st.Save(ctx, "beta", state))

	slots, err = st.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "alpha", slots[0].Slot)
	assert.Equal(t, state.UserTeamID, slots[0].TeamID)
	assert.Equal(t, state.SeasonYear, slots[0].Year)
	assert.Equal(t, game.SeasonInProgress, slots[0].Status)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	require.NoError(t, st.Save(ctx, DefaultSlot, testState(t)))
	require.NoError(t, st.Delete(ctx, DefaultSlot))
	require.ErrorIs(t, st.Delete(ctx, DefaultSlot), game.ErrSaveNotFound)
}

func TestStoreDropsCorruptSlot(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, err := st.db.ExecContext(ctx, `INSERT INTO slots (slot, state) VALUES (?, ?)`, "broken", "{not json")
	require.NoError(t, err)

	_, err = st.Load(ctx, "broken")
	require.ErrorIs(t, err, game.ErrSaveNotFound)

	// The corrupt row is gone; the slot is free again.
	slots, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
