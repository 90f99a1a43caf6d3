package otel_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/duelhall/internal/platform/otel"
	"github.com/stretchr/testify/require"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), "duelhall-test", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so nothing is exported
	shutdown, err := otel.Setup(context.Background(), "duelhall-test", "http://192.0.2.1:4318")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupNoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), "duelhall-test", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}
