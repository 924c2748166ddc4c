package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rescisao-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetRuleTable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// GIVEN: a saved version
	require.NoError(t, store.SaveRuleTable(ctx, sqlite.RuleTableRecord{
		Version:     "2025.1",
		Description: "tabelas 2025",
		ConfigJSON:  `{"version":"2025.1"}`,
	}))

	// WHEN: reading it back
	rec, err := store.GetRuleTable(ctx, "2025.1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	// THEN: it is stored but not active
	assert.Equal(t, "tabelas 2025", rec.Description)
	assert.Equal(t, `{"version":"2025.1"}`, rec.ConfigJSON)
	assert.False(t, rec.Active)
	assert.Nil(t, rec.ActivatedAt)
	assert.False(t, rec.CreatedAt.IsZero())

	missing, err := store.GetRuleTable(ctx, "1999.1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveRuleTable_ReplacesConfig(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveRuleTable(ctx, sqlite.RuleTableRecord{Version: "v1", ConfigJSON: "{}"}))
	require.NoError(t, store.SaveRuleTable(ctx, sqlite.RuleTableRecord{Version: "v1", ConfigJSON: `{"a":1}`}))

	records, err := store.ListRuleTables(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `{"a":1}`, records[0].ConfigJSON)
}

func TestSaveRuleTable_RequiresVersion(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveRuleTable(context.Background(), sqlite.RuleTableRecord{ConfigJSON: "{}"})

	assert.Error(t, err)
}

func TestActivateRuleTable_SingleActive(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	for _, v := range []string{"v1", "v2"} {
		require.NoError(t, store.SaveRuleTable(ctx, sqlite.RuleTableRecord{Version: v, ConfigJSON: "{}"}))
	}

	// GIVEN: no active version yet
	active, err := store.ActiveRuleTable(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	// WHEN: activating v1 then v2
	require.NoError(t, store.ActivateRuleTable(ctx, "v1"))
	require.NoError(t, store.ActivateRuleTable(ctx, "v2"))

	// THEN: only v2 is active
	active, err = store.ActiveRuleTable(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "v2", active.Version)
	assert.NotNil(t, active.ActivatedAt)

	records, err := store.ListRuleTables(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, r := range records {
		if r.Active {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
	assert.Equal(t, "v2", records[0].Version, "newest first")
}

func TestActivateRuleTable_UnknownVersionKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveRuleTable(ctx, sqlite.RuleTableRecord{Version: "v1", ConfigJSON: "{}"}))
	require.NoError(t, store.ActivateRuleTable(ctx, "v1"))

	err := store.ActivateRuleTable(ctx, "nope")

	assert.True(t, errors.Is(err, sqlite.ErrNotFound))
	active, err := store.ActiveRuleTable(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "v1", active.Version)
}
