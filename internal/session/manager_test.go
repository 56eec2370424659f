package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/gameid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, clock quartz.Clock, idle time.Duration) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	return NewManager(ManagerConfig{
		Dir:         dir,
		IdleTimeout: idle,
		Clock:       clock,
		Logger:      testLogger(),
	}), dir
}

func TestManagerLifecycle(t *testing.T) {
	t.Parallel()
	m, dir := newTestManager(t, quartz.NewMock(t), 0)
	id := gameid.Generate()

	u, err := m.Start(id, 3, testMatchup(), football.Home)
	require.NoError(t, err)
	assert.Equal(t, "Q1", u.Scoreboard.Period)
	assert.Equal(t, 1, m.Len())

	_, err = m.Start(id, 3, testMatchup(), football.Home)
	assert.ErrorIs(t, err, ErrExists)

	_, err = m.AutoPlays(id, 12)
	require.NoError(t, err)
	require.NoError(t, m.Save(id))
	assert.FileExists(t, filepath.Join(dir, id+".json"))

	require.NoError(t, m.Close(id))
	assert.Equal(t, 0, m.Len())
	_, err = m.AutoDrive(id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Load(id)
	require.NoError(t, err)
	u, err = m.ToEnd(id)
	require.NoError(t, err)
	assert.True(t, u.Scoreboard.Final)

	want := batchResult(t, 3)
	assert.Equal(t, want.Game.Score, u.Scoreboard.Score)
}

func TestManagerRejectsBadID(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, quartz.NewMock(t), 0)

	_, err := m.Start("not-an-id", 1, testMatchup(), football.Home)
	assert.Error(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestManagerLoadMissing(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, quartz.NewMock(t), 0)

	_, err := m.Load(gameid.Generate())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerExpiresIdleSessions(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	m, dir := newTestManager(t, clock, 10*time.Minute)
	id := gameid.Generate()

	_, err := m.Start(id, 11, testMatchup(), football.Away)
	require.NoError(t, err)

	clock.Advance(6 * time.Minute).MustWait(ctx)
	_, err = m.AutoPlays(id, 5)
	require.NoError(t, err, "activity resets the idle timer")

	clock.Advance(6 * time.Minute).MustWait(ctx)
	assert.Equal(t, 1, m.Len())

	clock.Advance(4 * time.Minute).MustWait(ctx)
	assert.Equal(t, 0, m.Len())
	_, err = m.AutoPlays(id, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	data, err := os.ReadFile(filepath.Join(dir, id+".json"))
	require.NoError(t, err, "expired sessions are saved")
	restored, err := UnmarshalSnapshot(data, WithLogger(testLogger()))
	require.NoError(t, err)
	assert.False(t, restored.Game().Final)

	_, err = m.Load(id)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestManagerSerializesCalls(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, quartz.NewMock(t), 0)
	id := gameid.Generate()
	_, err := m.Start(id, 21, testMatchup(), football.Home)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.AutoPlays(id, 10)
		}()
	}
	wg.Wait()

	if _, err := m.ToEnd(id); err != nil {
		require.ErrorIs(t, err, football.ErrGameOver)
	}

	var final *Session
	_, err = m.Do(id, func(s *Session) (Update, error) {
		final = s
		return s.State(), nil
	})
	require.NoError(t, err)

	want := batchResult(t, 21)
	assert.Equal(t, want.Drives, final.Drives())
}
