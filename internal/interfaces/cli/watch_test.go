package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ghscrunch/internal/application/crunch"
	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/internal/testutil"
	"github.com/turtacn/ghscrunch/pkg/errors"
)

func TestNewSourceWatcher_NoSources(t *testing.T) {
	_, err := newSourceWatcher(&config.Config{}, []crunch.Dataset{crunch.NewZealand}, time.Millisecond, testutil.NewMockLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestNewSourceWatcher_MissingDirectory(t *testing.T) {
	cfg := &config.Config{Korea: config.KoreaConfig{File: filepath.Join(t.TempDir(), "gone", "kr.xlsx")}}
	_, err := newSourceWatcher(cfg, []crunch.Dataset{crunch.Korea}, time.Millisecond, testutil.NewMockLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeSourceOpen))
}

func TestSourceWatcher_RunsChangedDatasets(t *testing.T) {
	dir := t.TempDir()
	nz := filepath.Join(dir, "nz.csv")
	kr := filepath.Join(dir, "kr.csv")
	other := filepath.Join(dir, "notes.txt")
	for _, f := range []string{nz, kr} {
		require.NoError(t, os.WriteFile(f, []byte("x\n"), 0o644))
	}
	cfg := &config.Config{
		Korea:      config.KoreaConfig{File: kr},
		NewZealand: config.NewZealandConfig{File: nz},
	}

	log := testutil.NewMockLogger()
	w, err := newSourceWatcher(cfg, []crunch.Dataset{crunch.NewZealand, crunch.Korea}, 50*time.Millisecond, log)
	require.NoError(t, err)
	defer w.Close()
	assert.True(t, log.HasMessage("info", "watching sources"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runs := make(chan []crunch.Dataset, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, ds []crunch.Dataset) { runs <- ds })
	}()

	// Unrelated files in a watched directory are ignored.
	require.NoError(t, os.WriteFile(other, []byte("ignored\n"), 0o644))
	require.NoError(t, os.WriteFile(nz, []byte("y\n"), 0o644))
	require.NoError(t, os.WriteFile(kr, []byte("y\n"), 0o644))

	select {
	case ds := <-runs:
		assert.Equal(t, []crunch.Dataset{crunch.Korea, crunch.NewZealand}, ds)
	case <-time.After(5 * time.Second):
		t.Fatal("no run after source change")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestDebouncer_TouchDiscardsStaleTick(t *testing.T) {
	deb := newDebouncer(30 * time.Millisecond)
	defer deb.stop()

	deb.touch(crunch.NewZealand)
	time.Sleep(80 * time.Millisecond) // the tick fires and is left unreceived
	deb.touch(crunch.Korea)

	select {
	case <-deb.C():
		t.Fatal("stale tick delivered before the new delay elapsed")
	default:
	}

	select {
	case <-deb.C():
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}
	assert.Equal(t, []crunch.Dataset{crunch.Korea, crunch.NewZealand}, deb.flush())
	assert.Empty(t, deb.flush())
}
