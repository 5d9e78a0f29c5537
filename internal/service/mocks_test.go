package service

import (
	"ChefHub/internal/model"
	"ChefHub/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func nopLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

// мок для repo.ChefRepository
type mockChefRepo struct{ mock.Mock }

func (m *mockChefRepo) CreateChef(ctx context.Context, chef *model.Chef) (*model.Chef, error) {
	args := m.Called(ctx, chef)
	if c, ok := args.Get(0).(*model.Chef); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChefRepo) GetChefByID(ctx context.Context, id int64) (*model.Chef, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*model.Chef); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChefRepo) GetChefByUsername(ctx context.Context, username string) (*model.Chef, error) {
	args := m.Called(ctx, username)
	if c, ok := args.Get(0).(*model.Chef); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChefRepo) UpdateChefName(ctx context.Context, id int64, name string) (*model.Chef, error) {
	args := m.Called(ctx, id, name)
	if c, ok := args.Get(0).(*model.Chef); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChefRepo) ListChefs(ctx context.Context, search string, page model.Page) ([]model.Chef, int64, error) {
	args := m.Called(ctx, search, page)
	chefs, _ := args.Get(0).([]model.Chef)
	return chefs, args.Get(1).(int64), args.Error(2)
}

var _ repo.ChefRepository = (*mockChefRepo)(nil)

// мок для repo.IngredientRepository
type mockIngredientRepo struct{ mock.Mock }

func (m *mockIngredientRepo) CreateIngredient(ctx context.Context, ing *model.Ingredient) (*model.Ingredient, error) {
	args := m.Called(ctx, ing)
	if i, ok := args.Get(0).(*model.Ingredient); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIngredientRepo) UpdateIngredient(ctx context.Context, id int64, upd repo.IngredientUpdate) (*model.Ingredient, error) {
	args := m.Called(ctx, id, upd)
	if i, ok := args.Get(0).(*model.Ingredient); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIngredientRepo) GetIngredientByID(ctx context.Context, id int64) (*model.Ingredient, error) {
	args := m.Called(ctx, id)
	if i, ok := args.Get(0).(*model.Ingredient); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIngredientRepo) ListIngredients(ctx context.Context, search string, page model.Page) ([]model.Ingredient, int64, error) {
	args := m.Called(ctx, search, page)
	out, _ := args.Get(0).([]model.Ingredient)
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *mockIngredientRepo) MissingIngredientIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).([]int64)
	return out, args.Error(1)
}

var _ repo.IngredientRepository = (*mockIngredientRepo)(nil)

// мок для repo.DishRepository
type mockDishRepo struct{ mock.Mock }

func (m *mockDishRepo) CreateDish(ctx context.Context, chefID int64, name string, lines []model.LineInput) (*model.DishComposition, error) {
	args := m.Called(ctx, chefID, name, lines)
	if d, ok := args.Get(0).(*model.DishComposition); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDishRepo) ReviseDish(ctx context.Context, chefID, dishID int64, rev repo.Revision) (*model.DishComposition, error) {
	args := m.Called(ctx, chefID, dishID, rev)
	if d, ok := args.Get(0).(*model.DishComposition); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDishRepo) CurrentComposition(ctx context.Context, dishID int64) (*model.DishComposition, error) {
	args := m.Called(ctx, dishID)
	if d, ok := args.Get(0).(*model.DishComposition); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDishRepo) VersionHistory(ctx context.Context, dishID int64, page model.Page) (*model.DishHistory, error) {
	args := m.Called(ctx, dishID, page)
	if h, ok := args.Get(0).(*model.DishHistory); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDishRepo) ListDishes(ctx context.Context, filter repo.DishFilter, page model.Page) ([]model.DishComposition, int64, error) {
	args := m.Called(ctx, filter, page)
	out, _ := args.Get(0).([]model.DishComposition)
	return out, args.Get(1).(int64), args.Error(2)
}

var _ repo.DishRepository = (*mockDishRepo)(nil)

// сервисы с чистым моком на каждый подтест
func newChefService() (*mockChefRepo, *ChefService) {
	m := new(mockChefRepo)
	return m, NewChefService(m, nopLogger())
}

func newIngredientService() (*mockIngredientRepo, *IngredientService) {
	m := new(mockIngredientRepo)
	return m, NewIngredientService(m, nopLogger())
}

func newDishService() (*mockDishRepo, *DishService) {
	m := new(mockDishRepo)
	return m, NewDishService(m, nopLogger())
}
