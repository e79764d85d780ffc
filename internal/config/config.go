package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	// PaystackSecretKey is deliberately not required at load time: a missing
	// secret must surface as a failed-precondition on the payment paths, not
	// keep the rest of the service from starting.
	PaystackSecretKey string `env:"PAYSTACK_SECRET_KEY"`
	PaystackBaseURL   string `env:"PAYSTACK_BASE_URL" envDefault:"https://api.paystack.co"`
	GatewayTimeoutS   int    `env:"GATEWAY_TIMEOUT_S" envDefault:"10"`

	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}
