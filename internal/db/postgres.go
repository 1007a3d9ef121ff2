package db

import (
	"fmt"

	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	postgresMaxIdleConns = 10
	postgresMaxOpenConns = 100
)

var postgresDB *gorm.DB

// ConnectPostgres opens the relational store and sizes its pool.
func ConnectPostgres(cfg *config.DatabaseConfig) error {
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
	})

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get PostgreSQL pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(postgresMaxIdleConns)
	sqlDB.SetMaxOpenConns(postgresMaxOpenConns)

	postgresDB = conn

	logger.Info("PostgreSQL connection established successfully", map[string]interface{}{
		"max_idle_conns": postgresMaxIdleConns,
		"max_open_conns": postgresMaxOpenConns,
	})
	return nil
}

// GetPostgres returns the connected database.
func GetPostgres() *gorm.DB {
	return postgresDB
}

// DisconnectPostgres closes the relational store connection.
func DisconnectPostgres() error {
	if postgresDB == nil {
		return nil
	}
	sqlDB, err := postgresDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
