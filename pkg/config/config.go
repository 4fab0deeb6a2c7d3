package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port          string        `envconfig:"PORT" default:"5000"`
	MongoURI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string        `envconfig:"MONGO_DATABASE" default:"ecommerce"`
	JWTSecret     string        `envconfig:"JWT_SECRET" default:"secret"`
	TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	KafkaBrokers  string        `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic    string        `envconfig:"KAFKA_TOPIC" default:"order-events"`
	SummaryTTL    time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"30s"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
