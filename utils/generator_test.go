package utils

import (
	"regexp"
	"testing"

	"github.com/ftld/certforge/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Certificate{}))
	return db
}

func TestGenerateVerificationCodeFormat(t *testing.T) {
	db := openTestDB(t)
	pattern := regexp.MustCompile(`^FTLD-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateVerificationCode(db)
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		assert.False(t, seen[code], "generated duplicate code %s", code)
		seen[code] = true
	}
}

func TestGenerateVerificationCodeSkipsExistingRows(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&models.Certificate{
		StudentName:      "Ada Lovelace",
		Program:          "Blockchain Fundamentals",
		CompletionDate:   "2026-01-15",
		VerificationCode: "FTLD-AAAA-BBBB",
	}).Error)

	for i := 0; i < 50; i++ {
		code, err := GenerateVerificationCode(db)
		require.NoError(t, err)
		assert.NotEqual(t, "FTLD-AAAA-BBBB", code)
	}
}
