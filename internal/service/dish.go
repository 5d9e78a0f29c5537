package service

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/model"
	"ChefHub/internal/repo"
	"ChefHub/internal/servermon"
	"context"
	"math"
	"strings"

	"go.uber.org/zap"
)

// DishService — движок версий блюд: проверяет запросы и права и
// делегирует транзакционную работу DishRepository.
type DishService struct {
	repo   repo.DishRepository
	logger *zap.SugaredLogger
}

func NewDishService(r repo.DishRepository, logger *zap.SugaredLogger) *DishService {
	return &DishService{repo: r, logger: logger}
}

// CreateDishRequest — вход создания блюда.
type CreateDishRequest struct {
	Name  string
	Lines []model.LineInput
}

// RevisionRequest — вход ревизии. Name не передано — имя сохраняется;
// передан null — ошибка валидации.
type RevisionRequest struct {
	Name  model.Optional[string]
	Lines []model.LineInput
}

// DishListRequest — параметры списка блюд.
type DishListRequest struct {
	Search string
	ChefID int64
	Page   model.Page
}

// CreateDish создаёт блюдо версии 1 от имени actor.
func (s *DishService) CreateDish(ctx context.Context, actor model.Actor, req CreateDishRequest) (*model.DishComposition, error) {
	const op = apperr.Op("service.CreateDish")

	if !actor.Authenticated() {
		return nil, apperr.E(op, apperr.CodeUnauthorized, "authentication required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.E(op, apperr.CodeValidation, "name is required")
	}
	if err := validateLines(op, req.Lines); err != nil {
		return nil, err
	}

	dish, err := s.repo.CreateDish(ctx, actor.ChefID, name, req.Lines)
	if err != nil {
		return nil, apperr.E(op, err)
	}
	servermon.DishCreatedCount.Inc()
	s.logger.Infow("dish created", "dish_id", dish.Dish.ID, "chef_id", actor.ChefID, "lines", len(dish.Lines))
	return dish, nil
}

// ReviseDish создаёт новую версию блюда. Ревизию может выполнить только владелец.
func (s *DishService) ReviseDish(ctx context.Context, actor model.Actor, dishID int64, req RevisionRequest) (*model.DishComposition, error) {
	const op = apperr.Op("service.ReviseDish")

	if !actor.Authenticated() {
		return nil, apperr.E(op, apperr.CodeUnauthorized, "authentication required")
	}
	rev := repo.Revision{Lines: req.Lines}
	if req.Name.Provided() {
		name, ok := req.Name.Get()
		if !ok {
			return nil, apperr.E(op, apperr.CodeValidation, "name cannot be null")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, apperr.E(op, apperr.CodeValidation, "name cannot be empty")
		}
		rev.Name = &name
	}
	if err := validateLines(op, req.Lines); err != nil {
		return nil, err
	}

	dish, err := s.repo.ReviseDish(ctx, actor.ChefID, dishID, rev)
	if err != nil {
		if apperr.Is(err, apperr.CodeUnauthorized) {
			s.logger.Warnw("dish revision rejected", "dish_id", dishID, "chef_id", actor.ChefID)
		}
		return nil, apperr.E(op, err)
	}
	servermon.DishRevisionCount.Inc()
	s.logger.Infow("dish revised", "dish_id", dishID, "chef_id", actor.ChefID, "version", dish.Dish.CurrentVersionNumber)
	return dish, nil
}

// CurrentComposition возвращает текущий состав. Если actor представился,
// он должен быть владельцем; анонимное чтение разрешено.
func (s *DishService) CurrentComposition(ctx context.Context, actor model.Actor, dishID int64) (*model.DishComposition, error) {
	const op = apperr.Op("service.CurrentComposition")

	dish, err := s.repo.CurrentComposition(ctx, dishID)
	if err != nil {
		return nil, apperr.E(op, err)
	}
	if actor.Authenticated() && !actor.Is(dish.Dish.ChefID) {
		return nil, apperr.E(op, apperr.CodeUnauthorized, "dish belongs to another chef")
	}
	return dish, nil
}

// VersionHistory возвращает страницу истории версий, сначала новые.
func (s *DishService) VersionHistory(ctx context.Context, dishID int64, page model.Page) (*model.DishHistory, error) {
	history, err := s.repo.VersionHistory(ctx, dishID, page)
	if err != nil {
		return nil, apperr.E(apperr.Op("service.VersionHistory"), err)
	}
	return history, nil
}

// ListDishes — список блюд с текущими составами.
func (s *DishService) ListDishes(ctx context.Context, req DishListRequest) ([]model.DishComposition, int64, error) {
	dishes, total, err := s.repo.ListDishes(ctx, repo.DishFilter{
		Search: strings.TrimSpace(req.Search),
		ChefID: req.ChefID,
	}, req.Page)
	if err != nil {
		return nil, 0, apperr.E(apperr.Op("service.ListDishes"), err)
	}
	return dishes, total, nil
}

// validateLines проверяет состав до обращения к БД: непустой, id положительные
// и попарно различны, количества конечны и неотрицательны.
func validateLines(op apperr.Op, lines []model.LineInput) error {
	if len(lines) == 0 {
		return apperr.E(op, apperr.CodeValidation, "at least one ingredient is required")
	}
	seen := make(map[int64]struct{}, len(lines))
	var duplicates, invalidIDs, invalidAmounts []int64
	for _, l := range lines {
		if l.IngredientID < 1 {
			invalidIDs = append(invalidIDs, l.IngredientID)
			continue
		}
		if _, ok := seen[l.IngredientID]; ok {
			duplicates = append(duplicates, l.IngredientID)
		}
		seen[l.IngredientID] = struct{}{}
		if l.Amount < 0 || math.IsNaN(l.Amount) || math.IsInf(l.Amount, 0) {
			invalidAmounts = append(invalidAmounts, l.IngredientID)
		}
	}
	switch {
	case len(invalidIDs) > 0:
		return apperr.E(op, apperr.CodeValidation, "ingredientId must be a positive integer",
			apperr.Details{"invalidIngredientIds": invalidIDs})
	case len(duplicates) > 0:
		return apperr.E(op, apperr.CodeValidation, "duplicate ingredientId in request",
			apperr.Details{"duplicateIngredientIds": duplicates})
	case len(invalidAmounts) > 0:
		return apperr.E(op, apperr.CodeValidation, "ingredientAmount must be a non-negative number",
			apperr.Details{"invalidAmountIngredientIds": invalidAmounts})
	}
	return nil
}
