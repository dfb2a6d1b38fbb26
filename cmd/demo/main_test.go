package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/tetra/internal/application/replay"
	"github.com/younwookim/tetra/internal/application/state"
	"github.com/younwookim/tetra/internal/input"
)

func TestLoadConfig_Embedded(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "Tetra Sprites", cfg.Engine.Window.Title)
	assert.Equal(t, 640, cfg.Engine.Window.Width)
	assert.True(t, cfg.Engine.Input.QuitOnEscape)
	assert.Len(t, cfg.Sprites.Textures, 3)
}

func TestLoadConfig_Directory(t *testing.T) {
	cfg, err := loadConfig("configs")
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Sprites.Count)

	_, err = loadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestRunHeadless(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	s, backend, err := runHeadless(context.Background(), cfg, options{headless: 30})
	require.NoError(t, err)

	assert.Equal(t, state.Stopped, s.loop.State())
	assert.Equal(t, uint64(30), s.loop.Frames())
	assert.Equal(t, uint64(30), s.game.Ticks(), "one timestep measured per frame")
	assert.Equal(t, 3*30, backend.Calls, "one draw call per texture block per frame")
	assert.Equal(t, 400*30, backend.Quads)
}

func TestRunHeadless_RecordThenReplay(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "run.json")

	recorded, _, err := runHeadless(context.Background(), cfg, options{headless: 90, record: file})
	require.NoError(t, err)
	require.FileExists(t, file)

	replayed, _, err := runHeadless(context.Background(), cfg, options{replay: file})
	require.NoError(t, err)

	assert.Equal(t, recorded.game.Ticks(), replayed.game.Ticks())
	assert.Equal(t, recorded.scene.Checksum(), replayed.scene.Checksum())
}

func TestRunHeadless_ReplayDeliversInput(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	data := replay.CreateTestReplayData(60, 16*time.Millisecond)
	data.Frames[10].Ev = []input.Event{input.KeyDownEvent(input.KeySpace)}
	data.Frames[12].Ev = []input.Event{input.KeyUpEvent(input.KeySpace)}

	file := filepath.Join(t.TempDir(), "input.json")
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, raw, 0o644))

	s, _, err := runHeadless(context.Background(), cfg, options{replay: file})
	require.NoError(t, err)

	assert.Equal(t, uint64(60), s.game.Ticks())
	assert.Len(t, s.scene.Sprites(), 400+50)
}

func TestRunHeadless_ContextCancel(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, _, err := runHeadless(ctx, cfg, options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), s.loop.Frames())
}
