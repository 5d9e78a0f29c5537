package repo

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestIngredientRepository_CreateUnique(t *testing.T) {
	db := newTestDB(t)
	r := NewIngredientRepository(db)
	ctx := context.Background()

	rice, err := r.CreateIngredient(ctx, &model.Ingredient{Name: "Rice", Unit: "g"})
	require.NoError(t, err)
	assert.NotZero(t, rice.ID)

	_, err = r.CreateIngredient(ctx, &model.Ingredient{Name: "Rice", Unit: "kg"})
	assert.Equal(t, apperr.CodeConflict, apperr.ErrorCode(err))
	assert.EqualError(t, err, `ingredient "Rice" already exists`)
}

func TestIngredientRepository_Update(t *testing.T) {
	db := newTestDB(t)
	r := NewIngredientRepository(db)
	ctx := context.Background()
	rice := seedIngredient(t, db, "Rice", "g")
	seedIngredient(t, db, "Egg", "pcs")

	t.Run("rename and re-unit", func(t *testing.T) {
		got, err := r.UpdateIngredient(ctx, rice.ID, IngredientUpdate{Name: strPtr("Jasmine Rice"), Unit: strPtr("kg")})
		require.NoError(t, err)
		assert.Equal(t, "Jasmine Rice", got.Name)
		assert.Equal(t, "kg", got.Unit)
	})

	t.Run("same name is not a conflict", func(t *testing.T) {
		got, err := r.UpdateIngredient(ctx, rice.ID, IngredientUpdate{Name: strPtr("Jasmine Rice")})
		require.NoError(t, err)
		assert.Equal(t, "kg", got.Unit)
	})

	t.Run("rename collides", func(t *testing.T) {
		_, err := r.UpdateIngredient(ctx, rice.ID, IngredientUpdate{Name: strPtr("Egg")})
		assert.Equal(t, apperr.CodeConflict, apperr.ErrorCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := r.UpdateIngredient(ctx, 404, IngredientUpdate{Unit: strPtr("g")})
		assert.Equal(t, apperr.CodeNotFound, apperr.ErrorCode(err))
	})
}

func TestIngredientRepository_ListAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewIngredientRepository(db)
	ctx := context.Background()
	rice := seedIngredient(t, db, "Rice", "g")
	seedIngredient(t, db, "Egg", "pcs")
	seedIngredient(t, db, "Soy sauce", "ml")

	got, err := r.GetIngredientByID(ctx, rice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rice", got.Name)

	_, err = r.GetIngredientByID(ctx, 404)
	assert.Equal(t, apperr.CodeNotFound, apperr.ErrorCode(err))

	// поиск по имени и по единице измерения
	byUnit, total, err := r.ListIngredients(ctx, "PCS", model.Page{Current: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, byUnit, 1) {
		assert.Equal(t, "Egg", byUnit[0].Name)
	}

	page2, total, err := r.ListIngredients(ctx, "", model.Page{Current: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	if assert.Len(t, page2, 1) {
		assert.Equal(t, "Soy sauce", page2[0].Name)
	}
}

func TestIngredientRepository_MissingIDs(t *testing.T) {
	db := newTestDB(t)
	r := NewIngredientRepository(db)
	ctx := context.Background()
	rice := seedIngredient(t, db, "Rice", "g")

	missing, err := r.MissingIngredientIDs(ctx, []int64{rice.ID, 77, 78, 77})
	require.NoError(t, err)
	assert.Equal(t, []int64{77, 78}, missing)

	missing, err = r.MissingIngredientIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestIngredientRepository_SearchUnicodeAndWildcards(t *testing.T) {
	db := newTestDB(t)
	r := NewIngredientRepository(db)
	ctx := context.Background()
	rice := seedIngredient(t, db, "Рис", "г")
	seedIngredient(t, db, "Salt", "g")
	seedIngredient(t, db, "Sugar 100%", "g")
	page := model.Page{Current: 1, PageSize: 10}

	for _, q := range []string{"Рис", "рис", "РИС", "ис"} {
		got, total, err := r.ListIngredients(ctx, q, page)
		require.NoError(t, err)
		require.Equal(t, int64(1), total, "query %q", q)
		assert.Equal(t, rice.ID, got[0].ID)
	}

	_, total, err := r.ListIngredients(ctx, "%", page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "percent sign matches literally")

	_, total, err = r.ListIngredients(ctx, "_", page)
	require.NoError(t, err)
	assert.Zero(t, total)

	t.Run("rename refreshes search key", func(t *testing.T) {
		_, err := r.UpdateIngredient(ctx, rice.ID, IngredientUpdate{Name: strPtr("Гречка")})
		require.NoError(t, err)

		_, total, err := r.ListIngredients(ctx, "рис", page)
		require.NoError(t, err)
		assert.Zero(t, total)
		got, total, err := r.ListIngredients(ctx, "ГРЕЧ", page)
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		assert.Equal(t, rice.ID, got[0].ID)
	})
}
