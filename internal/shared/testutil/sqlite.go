// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"go-leave/internal/shared/connection"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLite opens a private in-memory database and migrates models into it.
func NewSQLite(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := connection.OpenSQLite(dsn)
	require.NoError(t, err)

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...))
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
