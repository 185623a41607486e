package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures postgres connectivity and statement logging
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// LogSQL logs every statement, failed and slow ones are always logged
	LogSQL    bool
	SlowQuery time.Duration

	ConnectRetries int           // pings before giving up, 6 when zero
	PingTimeout    time.Duration // per ping, 5s when zero
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string

	// reported to the server as client info
	ClientName string
	ClientTag  string
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled     bool
	Addr        string
	DB          int
	Password    string
	DialTimeout time.Duration // default 5s
}
