package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const retryDelay = 5 * time.Second

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

func ConnectGORMWithRetry(cfg PostgresConfig, maxRetries int) (*gorm.DB, error) {
	logger := zap.L().Named("connection.postgres")
	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			lastErr = err
			logger.Warn("gorm open failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			logger.Warn("get sql.DB failed", zap.Int("attempt", i), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			lastErr = err
			logger.Warn("db ping failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		// Pool config
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		logger.Info("gorm connected to database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

// OpenSQLite opens an embedded database. A single connection keeps a shared
// in-memory database alive and serializes writers.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	zap.L().Named("connection.sqlite").Info("gorm connected to sqlite", zap.String("dsn", dsn))
	return db, nil
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	logger := zap.L().Named("connection.redis")
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			logger.Info("connected to redis", zap.String("addr", addr))
			return rdb, nil
		}

		lastErr = err
		logger.Warn("redis ping failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(err))
		time.Sleep(retryDelay)
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("redis connection failed after %d retries: %w", maxRetries, lastErr)
}
