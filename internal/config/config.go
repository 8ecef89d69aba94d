package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Transport string `env:"NOTIFY_TRANSPORT" env-default:"stdio" validate:"oneof=stdio http"`
	HTTPAddr  string `env:"NOTIFY_HTTP_ADDR" env-default:"127.0.0.1:8765" validate:"required,hostname_port"`

	LogLevel  string `env:"NOTIFY_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"NOTIFY_LOG_FORMAT" env-default:"text" validate:"oneof=text json"`

	IconPath         string `env:"NOTIFY_ICON_PATH"`
	TerminalNotifier string `env:"NOTIFY_TERMINAL_NOTIFIER" env-default:"terminal-notifier" validate:"required"`

	GrowlHost     string `env:"NOTIFY_GROWL_HOST" env-default:"localhost" validate:"required"`
	GrowlPort     int    `env:"NOTIFY_GROWL_PORT" env-default:"23053" validate:"min=1,max=65535"`
	GrowlPassword string `env:"NOTIFY_GROWL_PASSWORD"`

	NATSURL     string `env:"NOTIFY_NATS_URL" validate:"omitempty,url"`
	NATSSubject string `env:"NOTIFY_NATS_SUBJECT" env-default:"notify.outcome" validate:"required"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" validate:"omitempty,url"`
}

func Load() (*Config, error) {
	var cfg Config

	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return &cfg, nil
}
