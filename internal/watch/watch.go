// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package watch calls a function whenever a file changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/db47h/logicsim/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultDebounce is the default quiet period after the last event.
//
const DefaultDebounce = 100 * time.Millisecond

// A Watcher watches a single file.
//
type Watcher struct {
	// Debounce is the quiet period after the last event before the callback runs.
	Debounce time.Duration
	Log      *slog.Logger
}

// File blocks until ctx is done, calling fn after each burst of changes to the
// file at path. The parent directory is watched so that editors which
// replace the file on save are handled.
//
func (w *Watcher) File(ctx context.Context, path string, fn func()) error {
	d := w.Debounce
	if d <= 0 {
		d = DefaultDebounce
	}
	log := w.Log
	if log == nil {
		log = logging.Discard()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	defer fw.Close()
	if err = fw.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}

	timer := time.NewTimer(d)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			log.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(d)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch", "path", path, "error", err)
		case <-timer.C:
			fn()
		}
	}
}
