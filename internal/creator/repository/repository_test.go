package repository

import (
	"context"
	"path/filepath"
	"testing"

	"skeleton-creator/internal/creator/models"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "designs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewSQLiteStore(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

// ============================================================
// SQLite
// ============================================================

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, "a", map[string]string{"width": "120", "height": "40"}))
	require.NoError(t, store.Save(ctx, "a", map[string]string{"width": "200"}))
	require.NoError(t, store.Save(ctx, "b", map[string]string{"rtl": "true"}))

	fields, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"width": "200", "height": "40"}, fields)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	missing, err := store.Load(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestSQLiteStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Save(ctx, "a", map[string]string{"width": "120"}))
	require.NoError(t, store.Save(ctx, "b", map[string]string{"width": "80"}))
	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "missing"))

	fields, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, fields)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}

func TestSQLiteInitIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.Init(context.Background()))
}

// ============================================================
// Memory / Nop
// ============================================================

func TestMemoryStoreCopiesOnLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "x", map[string]string{"speed": "3"}))

	fields, err := store.Load(ctx, "x")
	require.NoError(t, err)
	fields["speed"] = "9"

	again, err := store.Load(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "3", again["speed"])

	require.NoError(t, store.Delete(ctx, "x"))
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestNopStore(t *testing.T) {
	ctx := context.Background()
	var store Store = NopStore{}
	assert.NoError(t, store.Save(ctx, "x", map[string]string{"a": "b"}))
	fields, err := store.Load(ctx, "x")
	assert.NoError(t, err)
	assert.Empty(t, fields)
	assert.NoError(t, store.Delete(ctx, "x"))
}

// ============================================================
// Codec
// ============================================================

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := models.Defaults()
	d.Width, d.Height = 120, 40
	d.BackgroundColor = "#000000"
	d.Speed = 1.25
	d.Mode = models.Qwik
	d.RTL = true
	d.GridVisibility = false
	d.Draw = models.FromMarkup("<path d=\"M0 0\" /> \n")

	got := Decode(Encode(d))
	assert.Equal(t, d, got)
}

func TestDecodeResetsSessionFields(t *testing.T) {
	d := models.Defaults()
	d.EditingMode = models.EditUpload
	d.Tool = models.ToolCircle
	d.Preview = models.PreviewSuspended

	got := Decode(Encode(d))
	assert.Equal(t, models.EditCode, got.EditingMode)
	assert.Equal(t, models.ToolSelect, got.Tool)
	assert.Equal(t, models.PreviewMounted, got.Preview)
}

func TestDecodeFallsBackOnBadFields(t *testing.T) {
	got := Decode(map[string]string{
		FieldDraw:            "{not json",
		FieldWidth:           "-5",
		FieldSpeed:           "0",
		FieldBackgroundColor: "blue",
		FieldMode:            "svelte",
		FieldRTL:             "yes",
	})
	assert.Equal(t, models.Defaults(), got)
}

func TestDecodeRejectsNonFiniteNumbers(t *testing.T) {
	got := Decode(map[string]string{
		FieldWidth:  "NaN",
		FieldHeight: "+Inf",
		FieldSpeed:  "Infinity",
	})
	assert.Equal(t, models.Defaults(), got)
}
