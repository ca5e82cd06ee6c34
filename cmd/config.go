package cmd

import (
	"fmt"
	"time"
)

// Config carries the runtime configuration of the dispatch service, loaded
// from the environment by cmd/app.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RoutingBaseURL string
	RoutingTimeout time.Duration

	AssignmentInterval time.Duration
	StaleSweepInterval time.Duration
	CourierStaleAge    time.Duration
}

// DatabaseDSN renders the postgres connection string.
func (c Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
