// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package telemetry_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewProvider(t *testing.T) {
	var buf bytes.Buffer
	tp, err := telemetry.NewProvider(config.Tracing{Enabled: true}, &buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "connect")
	span.SetAttributes(attribute.Int("slot", 1))
	span.End()
	require.NoError(t, tp.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"connect"`)
	assert.Contains(t, buf.String(), `"logicsim"`)
}

func TestSetup_disabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := telemetry.Setup(config.Tracing{}, &buf)
	require.NoError(t, err)
	_, span := telemetry.Tracer().Start(context.Background(), "noop")
	span.End()
	require.NoError(t, shutdown(context.Background()))
	assert.Empty(t, buf.String())
}
