package service

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/model"
	"ChefHub/internal/repo"
	"context"
	"strings"

	"go.uber.org/zap"
)

// IngredientService — общий каталог ингредиентов.
type IngredientService struct {
	repo   repo.IngredientRepository
	logger *zap.SugaredLogger
}

func NewIngredientService(r repo.IngredientRepository, logger *zap.SugaredLogger) *IngredientService {
	return &IngredientService{repo: r, logger: logger}
}

// IngredientPatch — частичное обновление ингредиента.
type IngredientPatch struct {
	Name model.Optional[string]
	Unit model.Optional[string]
}

func (s *IngredientService) Create(ctx context.Context, actor model.Actor, name, unit string) (*model.Ingredient, error) {
	const op = apperr.Op("service.CreateIngredient")

	if !actor.Authenticated() {
		return nil, apperr.E(op, apperr.CodeUnauthorized, "authentication required")
	}
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if name == "" {
		return nil, apperr.E(op, apperr.CodeValidation, "name is required")
	}
	if unit == "" {
		return nil, apperr.E(op, apperr.CodeValidation, "unit is required")
	}
	ing, err := s.repo.CreateIngredient(ctx, &model.Ingredient{Name: name, Unit: unit})
	if err != nil {
		return nil, apperr.E(op, err)
	}
	s.logger.Infow("ingredient created", "ingredient_id", ing.ID, "chef_id", actor.ChefID)
	return ing, nil
}

func (s *IngredientService) Update(ctx context.Context, actor model.Actor, id int64, patch IngredientPatch) (*model.Ingredient, error) {
	const op = apperr.Op("service.UpdateIngredient")

	if !actor.Authenticated() {
		return nil, apperr.E(op, apperr.CodeUnauthorized, "authentication required")
	}
	var upd repo.IngredientUpdate
	name, err := nonEmptyField(op, "name", patch.Name)
	if err != nil {
		return nil, err
	}
	upd.Name = name
	unit, err := nonEmptyField(op, "unit", patch.Unit)
	if err != nil {
		return nil, err
	}
	upd.Unit = unit
	if upd.Name == nil && upd.Unit == nil {
		return nil, apperr.E(op, apperr.CodeValidation, "nothing to update: provide name or unit")
	}

	ing, err := s.repo.UpdateIngredient(ctx, id, upd)
	if err != nil {
		return nil, apperr.E(op, err)
	}
	return ing, nil
}

func (s *IngredientService) Get(ctx context.Context, id int64) (*model.Ingredient, error) {
	ing, err := s.repo.GetIngredientByID(ctx, id)
	if err != nil {
		return nil, apperr.E(apperr.Op("service.GetIngredient"), err)
	}
	return ing, nil
}

func (s *IngredientService) List(ctx context.Context, search string, page model.Page) ([]model.Ingredient, int64, error) {
	out, total, err := s.repo.ListIngredients(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, 0, apperr.E(apperr.Op("service.ListIngredients"), err)
	}
	return out, total, nil
}

// nonEmptyField: поле не передано -> nil; null или пустая строка -> ошибка валидации.
func nonEmptyField(op apperr.Op, field string, v model.Optional[string]) (*string, error) {
	if !v.Provided() {
		return nil, nil
	}
	s, ok := v.Get()
	if !ok {
		return nil, apperr.E(op, apperr.CodeValidation, field+" cannot be null")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, apperr.E(op, apperr.CodeValidation, field+" cannot be empty")
	}
	return &s, nil
}
