package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	// PG is the primary store holding online identities, links and
	// migrated license snapshots
	PG PGConfig

	// Registry is the authoritative civil-registry store, read for
	// candidate retrieval and license sourcing
	Registry PGConfig

	// CH receives the append-only search audit stream
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 6 (63s(ish) max with exponential backoff)
	PingTimeout    time.Duration // default 5s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
}
