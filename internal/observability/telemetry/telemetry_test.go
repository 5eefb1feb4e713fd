package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revobooking/revo-ui/config"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.ObservabilityTracingConfig{ServiceName: "revo-ui"}, nil)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_EnabledReturnsProviderShutdown(t *testing.T) {
	cfg := config.ObservabilityTracingConfig{
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		ServiceName: "revo-ui-test",
	}

	shutdown, err := Setup(context.Background(), cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Nothing was exported, so the batcher has nothing to flush.
	_ = shutdown(ctx)
}
