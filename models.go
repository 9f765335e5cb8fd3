package main

import (
	"database/sql"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/careercompass/internal/config"
	"github.com/muhammadolammi/careercompass/internal/database"
	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/logger"
)

type cache interface {
	domain.LocalCache
	io.Closer
}

// ServerConfig carries the long-lived clients the serve command wires
// together. Optional integrations are nil when their settings are absent.
type ServerConfig struct {
	Config *config.Config
	Log    *logger.Logger

	DBConn *sql.DB
	DB     *database.Queries
	Cache  cache

	AwsConfig  *aws.Config
	RabbitConn *amqp.Connection
	Generator  *geminiGenerator
}

// Close releases every client in reverse order of acquisition.
func (s *ServerConfig) Close() {
	if s.RabbitConn != nil {
		if err := s.RabbitConn.Close(); err != nil {
			s.Log.Warn("closing rabbitmq connection", "error", err)
		}
	}
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			s.Log.Warn("closing cache", "error", err)
		}
	}
	if s.DBConn != nil {
		if err := s.DBConn.Close(); err != nil {
			s.Log.Warn("closing db", "error", err)
		}
	}
}
