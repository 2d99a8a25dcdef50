package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"co2d/internal/artifacts"
)

// Watch starts reloading the artifact set when the store changes on disk. For
// a directory (file store) it reacts to the CURRENT pointer being replaced;
// for a file (bolt store) to writes of that file. Bursts of events are
// coalesced into one Reload after the debounce interval.
//
// The watch is established before Watch returns; the event loop runs until
// ctx is done.
func (m *Manager) Watch(ctx context.Context) error {
	if m.watchPath == "" {
		return errors.New("manager: no watch path configured")
	}
	dir, target := m.watchPath, artifacts.CurrentFile
	fi, err := os.Stat(m.watchPath)
	if err != nil {
		return fmt.Errorf("watch %s: %w", m.watchPath, err)
	}
	if !fi.IsDir() {
		dir, target = filepath.Dir(m.watchPath), filepath.Base(m.watchPath)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	m.log.Info().Str("dir", dir).Str("target", target).Dur("debounce", m.debounce).Msg("watching artifacts")
	go m.watchLoop(ctx, w, target)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context, w *fsnotify.Watcher, target string) {
	defer w.Close()
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target || !ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename) {
				continue
			}
			m.log.Debug().Str("event", ev.String()).Msg("artifact change")
			fire = time.After(m.debounce)
		case <-fire:
			fire = nil
			// failures are recorded by Reload; the old set keeps serving
			_ = m.Reload(ctx)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			m.log.Warn().Err(err).Msg("artifact watcher error")
		}
	}
}
