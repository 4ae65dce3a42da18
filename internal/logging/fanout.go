// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logging

import (
	"context"
	"log/slog"
)

// fanout sends records to all its handlers.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var err error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if e := h.Handle(ctx, r.Clone()); e != nil && err == nil {
			err = e
		}
	}
	return err
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	r := make(fanout, len(f))
	for i, h := range f {
		r[i] = h.WithAttrs(attrs)
	}
	return r
}

func (f fanout) WithGroup(name string) slog.Handler {
	r := make(fanout, len(f))
	for i, h := range f {
		r[i] = h.WithGroup(name)
	}
	return r
}
