package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config - connection settings for Fluent Bit.
type Config struct {
	Host string
	Port int
	// TagPrefix is prepended to every level tag, e.g. "property-viewer.info".
	TagPrefix string
	// Async buffers records in memory so a slow collector never stalls the UI.
	Async   bool
	Timeout time.Duration
}

// NewClient creates a Fluent Bit client. There is no ping: a bad address
// shows up on the first Post, not here.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("fluentd host is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Async:      cfg.Async,
		Timeout:    timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}

	return logger, nil
}
