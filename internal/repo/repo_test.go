package repo

import (
	"ChefHub/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB инициализирует изолированную in-memory SQLite (modernc.org/sqlite) для тестов репозитория
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(":memory:")
	if err != nil {
		t.Fatalf("failed to init sqlite (modernc): %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// хелперы наполнения
func seedChef(t *testing.T, db *gorm.DB, username string) *model.Chef {
	t.Helper()
	c, err := NewChefRepository(db).CreateChef(context.Background(), &model.Chef{
		Name:         "Chef " + username,
		Username:     username,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return c
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) *model.Ingredient {
	t.Helper()
	ing, err := NewIngredientRepository(db).CreateIngredient(context.Background(), &model.Ingredient{Name: name, Unit: unit})
	require.NoError(t, err)
	return ing
}
