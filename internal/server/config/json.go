package config

import (
	"encoding/json"
	"os"

	"github.com/agency/cryptoservice/internal/flagx"
	"github.com/agency/cryptoservice/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "1h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	NatsURL            string         `json:"nats_url"`
	NatsConnectionName string         `json:"nats_connection_name"`
	NatsConnectTimeout timex.Duration `json:"nats_connect_timeout"`
	NatsMaxReconnects  int            `json:"nats_max_reconnects"`
	NatsReconnectWait  timex.Duration `json:"nats_reconnect_wait"`
	DatabaseDSN        string         `json:"database_dsn"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	MaxTries           int            `json:"max_tries"`
	PasswordLength     int            `json:"password_length"`
	PasswordHashCost   int            `json:"password_hash_cost"`
	KeyLength          int            `json:"key_length"`
	CleanupInterval    timex.Duration `json:"cleanup_interval"`
	CleanupMaxAge      timex.Duration `json:"cleanup_max_age"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics — a broken config file should
// stop the process before it starts serving.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.NatsURL = c.NatsURL
	config.NatsConnectionName = c.NatsConnectionName
	config.NatsConnectTimeout = c.NatsConnectTimeout.Duration
	config.NatsMaxReconnects = c.NatsMaxReconnects
	config.NatsReconnectWait = c.NatsReconnectWait.Duration
	config.DatabaseDSN = c.DatabaseDSN
	config.RequestTimeout = c.RequestTimeout.Duration
	config.MaxTries = c.MaxTries
	config.PasswordLength = c.PasswordLength
	config.PasswordHashCost = c.PasswordHashCost
	config.KeyLength = c.KeyLength
	config.CleanupInterval = c.CleanupInterval.Duration
	config.CleanupMaxAge = c.CleanupMaxAge.Duration
}
