package config

import (
	"errors"

	"github.com/Skotchmaster/online_pharmacy/pkg/config"
)

type ServiceConfig struct {
	config.Config
}

func Load() (ServiceConfig, error) {
	cfg := config.Load()

	if err := errors.Join(
		config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL"),
		config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET"),
	); err != nil {
		return ServiceConfig{}, err
	}

	return ServiceConfig{Config: cfg}, nil
}
