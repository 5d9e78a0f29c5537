package repo

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/model"
	"ChefHub/internal/servermon"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Revision — изменения одной ревизии блюда. Name == nil оставляет имя как есть.
type Revision struct {
	Name  *string
	Lines []model.LineInput
}

// DishFilter — условия выборки списка блюд.
type DishFilter struct {
	Search string
	ChefID int64
}

// DishRepository — версионируемое хранилище блюд. Create и Revise — единственные
// операции записи; каждая выполняется одной транзакцией.
type DishRepository interface {
	// CreateDish создаёт блюдо версии 1 с переданным составом.
	CreateDish(ctx context.Context, chefID int64, name string, lines []model.LineInput) (*model.DishComposition, error)

	// ReviseDish переводит блюдо с версии v на v+1 и вставляет новый набор строк.
	// Строки предыдущих версий не изменяются.
	ReviseDish(ctx context.Context, chefID, dishID int64, rev Revision) (*model.DishComposition, error)

	// CurrentComposition возвращает блюдо и строки его текущей версии.
	CurrentComposition(ctx context.Context, dishID int64) (*model.DishComposition, error)

	// VersionHistory возвращает страницу версий блюда, сначала новые.
	VersionHistory(ctx context.Context, dishID int64, page model.Page) (*model.DishHistory, error)

	// ListDishes возвращает страницу блюд вместе с текущими составами.
	ListDishes(ctx context.Context, filter DishFilter, page model.Page) ([]model.DishComposition, int64, error)
}

type dishRepo struct {
	db *gorm.DB
}

// NewDishRepository создаёт gorm-реализацию DishRepository.
func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepo{db: db}
}

func (r *dishRepo) CreateDish(ctx context.Context, chefID int64, name string, lines []model.LineInput) (_ *model.DishComposition, err error) {
	const op = apperr.Op("repo.CreateDish")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	var out *model.DishComposition
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chef model.Chef
		if err := tx.First(&chef, chefID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(op, apperr.CodeNotFound, fmt.Sprintf("chef %d not found", chefID))
			}
			return apperr.E(op, dbError(err))
		}
		if err := checkIngredientsExist(tx, op, lines); err != nil {
			return err
		}
		if err := checkDishName(tx, op, chefID, name, 0); err != nil {
			return err
		}

		dish := model.Dish{ChefID: chefID, Name: name, CurrentVersionNumber: 1}
		if err := tx.Omit(clause.Associations).Create(&dish).Error; err != nil {
			if isUniqueViolation(err) {
				return dishNameTaken(op, name)
			}
			return apperr.E(op, dbError(err))
		}
		if err := insertLines(tx, dish.ID, dish.CurrentVersionNumber, lines); err != nil {
			return apperr.E(op, dbError(err))
		}
		got, err := loadLines(tx, dish.ID, dish.CurrentVersionNumber)
		if err != nil {
			return apperr.E(op, dbError(err))
		}
		out = &model.DishComposition{Dish: dish, ChefName: chef.Name, Lines: got}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dishRepo) ReviseDish(ctx context.Context, chefID, dishID int64, rev Revision) (_ *model.DishComposition, err error) {
	const op = apperr.Op("repo.ReviseDish")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	var out *model.DishComposition
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Номер текущей версии читается только внутри транзакции и под блокировкой строки.
		var dish model.Dish
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dish, dishID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(op, apperr.CodeNotFound, fmt.Sprintf("dish %d not found", dishID))
			}
			return apperr.E(op, dbError(err))
		}
		if dish.ChefID != chefID {
			return apperr.E(op, apperr.CodeUnauthorized, "only the owner can revise this dish")
		}
		if err := checkIngredientsExist(tx, op, rev.Lines); err != nil {
			return err
		}

		prev := dish.CurrentVersionNumber
		next := prev + 1
		updates := map[string]any{
			"current_version_number": next,
			"updated_at":             tx.NowFunc(),
		}
		if rev.Name != nil && *rev.Name != dish.Name {
			if err := checkDishName(tx, op, dish.ChefID, *rev.Name, dish.ID); err != nil {
				return err
			}
			updates["name"] = *rev.Name
			updates["search_key"] = model.SearchKey(*rev.Name)
		}

		res := tx.Model(&model.Dish{}).
			Where("id = ? AND current_version_number = ?", dish.ID, prev).
			Updates(updates)
		if res.Error != nil {
			if isUniqueViolation(res.Error) && rev.Name != nil {
				return dishNameTaken(op, *rev.Name)
			}
			return apperr.E(op, dbError(res.Error))
		}
		if res.RowsAffected == 0 {
			return apperr.E(op, apperr.CodeConflict, fmt.Sprintf("dish %d was revised concurrently", dish.ID))
		}
		if err := insertLines(tx, dish.ID, next, rev.Lines); err != nil {
			return apperr.E(op, dbError(err))
		}

		var updated model.Dish
		if err := tx.Preload("Chef").First(&updated, dish.ID).Error; err != nil {
			return apperr.E(op, dbError(err))
		}
		got, err := loadLines(tx, updated.ID, updated.CurrentVersionNumber)
		if err != nil {
			return apperr.E(op, dbError(err))
		}
		out = newComposition(updated, got)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dishRepo) CurrentComposition(ctx context.Context, dishID int64) (_ *model.DishComposition, err error) {
	const op = apperr.Op("repo.CurrentComposition")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	db := r.db.WithContext(ctx)
	dish, err := findDish(db, op, dishID)
	if err != nil {
		return nil, err
	}
	// Набор строк версии вставляется атомарно, поэтому номер версии из
	// метаданных всегда указывает на полный набор.
	got, err := loadLines(db, dish.ID, dish.CurrentVersionNumber)
	if err != nil {
		return nil, apperr.E(op, dbError(err))
	}
	return newComposition(*dish, got), nil
}

func (r *dishRepo) VersionHistory(ctx context.Context, dishID int64, page model.Page) (_ *model.DishHistory, err error) {
	const op = apperr.Op("repo.VersionHistory")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	db := r.db.WithContext(ctx)
	dish, err := findDish(db, op, dishID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := db.Model(&model.DishIngredientLine{}).
		Where("dish_id = ?", dish.ID).
		Distinct("version_number").
		Count(&total).Error; err != nil {
		return nil, apperr.E(op, dbError(err))
	}

	// Пагинируются группы версий, а не отдельные строки.
	var versions []int
	if err := db.Model(&model.DishIngredientLine{}).
		Where("dish_id = ?", dish.ID).
		Distinct("version_number").
		Order("version_number DESC").
		Limit(page.Limit()).Offset(page.Offset()).
		Pluck("version_number", &versions).Error; err != nil {
		return nil, apperr.E(op, dbError(err))
	}

	history := &model.DishHistory{Dish: *dish, Total: total, Versions: []model.VersionSnapshot{}}
	if len(versions) == 0 {
		return history, nil
	}

	var rows []model.DishIngredientLine
	if err := db.Preload("Ingredient").
		Where("dish_id = ? AND version_number IN ?", dish.ID, versions).
		Order("version_number DESC").
		Order("ingredient_id ASC").
		Find(&rows).Error; err != nil {
		return nil, apperr.E(op, dbError(err))
	}

	byVersion := make(map[int][]model.Line, len(versions))
	for _, row := range rows {
		byVersion[row.VersionNumber] = append(byVersion[row.VersionNumber], model.EnrichLine(row))
	}
	for _, v := range versions {
		history.Versions = append(history.Versions, model.VersionSnapshot{VersionNumber: v, Lines: byVersion[v]})
	}
	return history, nil
}

func (r *dishRepo) ListDishes(ctx context.Context, filter DishFilter, page model.Page) (_ []model.DishComposition, _ int64, err error) {
	const op = apperr.Op("repo.ListDishes")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&model.Dish{})
		if filter.Search != "" {
			db = db.Where(searchCondition, likePattern(filter.Search))
		}
		if filter.ChefID > 0 {
			db = db.Where("chef_id = ?", filter.ChefID)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, apperr.E(op, dbError(err))
	}

	var dishes []model.Dish
	if err := r.db.WithContext(ctx).Scopes(scope).
		Preload("Chef").
		Order("updated_at DESC").
		Order("id DESC").
		Limit(page.Limit()).Offset(page.Offset()).
		Find(&dishes).Error; err != nil {
		return nil, 0, apperr.E(op, dbError(err))
	}
	if len(dishes) == 0 {
		return []model.DishComposition{}, total, nil
	}

	ids := make([]int64, 0, len(dishes))
	for _, d := range dishes {
		ids = append(ids, d.ID)
	}

	// Только строки текущей версии каждого блюда: фильтр через join с dishes.
	var rows []model.DishIngredientLine
	if err := r.db.WithContext(ctx).
		Select("dish_ingredient_lines.*").
		Joins("JOIN dishes ON dishes.id = dish_ingredient_lines.dish_id AND dishes.current_version_number = dish_ingredient_lines.version_number").
		Preload("Ingredient").
		Where("dish_ingredient_lines.dish_id IN ?", ids).
		Order("dish_ingredient_lines.dish_id ASC").
		Order("dish_ingredient_lines.ingredient_id ASC").
		Find(&rows).Error; err != nil {
		return nil, 0, apperr.E(op, dbError(err))
	}
	byDish := make(map[int64][]model.Line, len(dishes))
	for _, row := range rows {
		byDish[row.DishID] = append(byDish[row.DishID], model.EnrichLine(row))
	}

	out := make([]model.DishComposition, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, *newComposition(d, byDish[d.ID]))
	}
	return out, total, nil
}

func findDish(db *gorm.DB, op apperr.Op, dishID int64) (*model.Dish, error) {
	var dish model.Dish
	if err := db.Preload("Chef").First(&dish, dishID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(op, apperr.CodeNotFound, fmt.Sprintf("dish %d not found", dishID))
		}
		return nil, apperr.E(op, dbError(err))
	}
	return &dish, nil
}

func newComposition(dish model.Dish, lines []model.Line) *model.DishComposition {
	c := &model.DishComposition{Dish: dish, Lines: lines}
	if dish.Chef != nil {
		c.ChefName = dish.Chef.Name
	}
	if c.Lines == nil {
		c.Lines = []model.Line{}
	}
	return c
}

func insertLines(tx *gorm.DB, dishID int64, version int, lines []model.LineInput) error {
	rows := make([]model.DishIngredientLine, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, model.DishIngredientLine{
			DishID:        dishID,
			IngredientID:  l.IngredientID,
			VersionNumber: version,
			Amount:        l.Amount,
		})
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func loadLines(db *gorm.DB, dishID int64, version int) ([]model.Line, error) {
	var rows []model.DishIngredientLine
	if err := db.Preload("Ingredient").
		Where("dish_id = ? AND version_number = ?", dishID, version).
		Order("ingredient_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.EnrichLine(row))
	}
	return out, nil
}

func checkIngredientsExist(tx *gorm.DB, op apperr.Op, lines []model.LineInput) error {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.IngredientID)
	}
	missing, err := missingIngredientIDs(tx, ids)
	if err != nil {
		return apperr.E(op, dbError(err))
	}
	if len(missing) > 0 {
		return apperr.E(op, apperr.CodeNotFound,
			"ingredients not found: "+joinIDs(missing),
			apperr.Details{"missingIngredientIds": missing})
	}
	return nil
}

func checkDishName(tx *gorm.DB, op apperr.Op, chefID int64, name string, excludeID int64) error {
	var count int64
	q := tx.Model(&model.Dish{}).Where("chef_id = ? AND name = ?", chefID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperr.E(op, dbError(err))
	}
	if count > 0 {
		return dishNameTaken(op, name)
	}
	return nil
}

func dishNameTaken(op apperr.Op, name string) error {
	return apperr.E(op, apperr.CodeConflict, fmt.Sprintf("dish %q already exists for this chef", name))
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
