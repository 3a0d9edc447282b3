package config

// RingConfig describes the knobs a process hosting a ring needs at
// startup: the ring's modulus, its per-node replica count, and the
// ambient log level/format (see pkg/logger.Config).
type RingConfig struct {
	Capacity    uint64 `env:"RING_CAPACITY" env-default:"1024" validate:"gte=1"`
	Replicas    int    `env:"RING_REPLICAS" env-default:"10" validate:"gte=0"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat   string `env:"LOG_FORMAT" env-default:"json" validate:"oneof=json text"`
	ListenAddr  string `env:"LISTEN_ADDR" env-default:"127.0.0.1:7000"`
}
