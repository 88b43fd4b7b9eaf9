package docfill

import (
	"go.uber.org/zap"
)

// newTestEngine builds an engine over a memory client with quiet logging
// and a deterministic test configuration.
func newTestEngine(client DocumentClient) *Engine {
	config := DefaultConfig()
	config.LogLevel = "off"
	return NewWithOptions(client,
		WithConfig(config),
		WithLogger(zap.NewNop().Sugar()),
	)
}
