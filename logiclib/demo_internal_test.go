// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logiclib

import (
	"testing"

	ls "github.com/db47h/logicsim"
	"github.com/stretchr/testify/assert"
)

func TestDemo_failureClears(t *testing.T) {
	defer func(k ls.Kind) { demoGate = k }(demoGate)

	td := []struct {
		name string
		gate ls.Kind
		err  error
	}{
		{"unknown_kind", ls.Kind(0), ls.ErrUnknownKind},
		{"no_slots", ls.Input, ls.ErrInvalidSlot},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			demoGate = d.gate
			c := ls.NewController()
			dc, err := Demo(c)
			assert.ErrorIs(t, err, d.err)
			assert.Equal(t, DemoCircuit{}, dc)
			assert.Equal(t, ls.Empty, c.State())
			assert.Equal(t, 0, c.Snapshot().Len())
		})
	}
}
