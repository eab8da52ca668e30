package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navigator/internal/script"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "scripts.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func quiz() *script.Script {
	return &script.Script{
		Name:        "quiz",
		Description: "answers the quiz",
		Steps: []script.Step{
			{Input: "1", Mode: script.ModeSilent},
			{Input: "2", Mode: script.ModeShow},
			{Input: "", Mode: script.ModePause},
			{Input: "42", Mode: script.ModeConfirm},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, quiz()))

	got, err := s.Load(ctx, "quiz")
	require.NoError(t, err)
	assert.Equal(t, quiz(), got)
}

func TestSaveReplacesSteps(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, quiz()))

	shorter := &script.Script{Name: "quiz", Description: "v2", Steps: []script.Step{{Input: "back"}}}
	require.NoError(t, s.Save(ctx, shorter))

	got, err := s.Load(ctx, "quiz")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Description)
	assert.Equal(t, []script.Step{{Input: "back", Mode: script.ModeSilent}}, got.Steps)
}

func TestSaveRequiresName(t *testing.T) {
	s, _ := openTestStore(t)
	assert.Error(t, s.Save(context.Background(), &script.Script{}))
}

func TestLoadMissing(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrderedByName(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, quiz()))
	require.NoError(t, s.Save(ctx, &script.Script{Name: "empty"}))
	require.NoError(t, s.Save(ctx, &script.Script{Name: "flow", Steps: []script.Step{{Input: "a"}, {Input: "back"}}}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Summary{
		{Name: "empty", Steps: 0},
		{Name: "flow", Steps: 2},
		{Name: "quiz", Description: "answers the quiz", Steps: 4},
	}, list)
}

func TestDelete(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, quiz()))

	require.NoError(t, s.Delete(ctx, "quiz"))
	_, err := s.Load(ctx, "quiz")
	assert.ErrorIs(t, err, ErrNotFound)

	var orphans int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM script_steps`).Scan(&orphans))
	assert.Zero(t, orphans)

	assert.ErrorIs(t, s.Delete(ctx, "quiz"), ErrNotFound)
}

func TestReopenKeepsDataAndSchema(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, quiz()))
	require.NoError(t, s.Close())

	again, err := Open(ctx, path)
	require.NoError(t, err)
	defer again.Close()

	version, err := again.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)

	got, err := again.Load(ctx, "quiz")
	require.NoError(t, err)
	assert.Len(t, got.Steps, 4)
	assert.Equal(t, path, again.Path())
}
