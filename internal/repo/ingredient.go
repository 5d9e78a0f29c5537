package repo

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/model"
	"ChefHub/internal/servermon"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// IngredientUpdate — изменяемые поля ингредиента; nil означает "не менять".
type IngredientUpdate struct {
	Name *string
	Unit *string
}

// IngredientRepository — доступ к каталогу ингредиентов.
type IngredientRepository interface {
	CreateIngredient(ctx context.Context, ing *model.Ingredient) (*model.Ingredient, error)
	UpdateIngredient(ctx context.Context, id int64, upd IngredientUpdate) (*model.Ingredient, error)
	GetIngredientByID(ctx context.Context, id int64) (*model.Ingredient, error)
	ListIngredients(ctx context.Context, search string, page model.Page) ([]model.Ingredient, int64, error)

	// MissingIngredientIDs возвращает те id из набора, которых нет в каталоге.
	MissingIngredientIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type ingredientRepo struct {
	db *gorm.DB
}

// NewIngredientRepository создаёт gorm-реализацию IngredientRepository.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepo{db: db}
}

func (r *ingredientRepo) CreateIngredient(ctx context.Context, ing *model.Ingredient) (_ *model.Ingredient, err error) {
	const op = apperr.Op("repo.CreateIngredient")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkIngredientName(tx, op, ing.Name, 0); err != nil {
			return err
		}
		if err := tx.Create(ing).Error; err != nil {
			if isUniqueViolation(err) {
				return ingredientNameTaken(op, ing.Name, err)
			}
			return apperr.E(op, dbError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ing, nil
}

func (r *ingredientRepo) UpdateIngredient(ctx context.Context, id int64, upd IngredientUpdate) (_ *model.Ingredient, err error) {
	const op = apperr.Op("repo.UpdateIngredient")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	var ing model.Ingredient
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(op, apperr.CodeNotFound, fmt.Sprintf("ingredient %d not found", id))
			}
			return apperr.E(op, dbError(err))
		}

		updates := map[string]any{}
		if upd.Name != nil && *upd.Name != ing.Name {
			if err := checkIngredientName(tx, op, *upd.Name, ing.ID); err != nil {
				return err
			}
			updates["name"] = *upd.Name
		}
		if upd.Unit != nil && *upd.Unit != ing.Unit {
			updates["unit"] = *upd.Unit
		}
		if len(updates) == 0 {
			return nil
		}
		name, unit := ing.Name, ing.Unit
		if upd.Name != nil {
			name = *upd.Name
		}
		if upd.Unit != nil {
			unit = *upd.Unit
		}
		updates["search_key"] = model.SearchKey(name, unit)
		if err := tx.Model(&model.Ingredient{}).Where("id = ?", ing.ID).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return ingredientNameTaken(op, *upd.Name, err)
			}
			return apperr.E(op, dbError(err))
		}
		return tx.First(&ing, ing.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepo) GetIngredientByID(ctx context.Context, id int64) (_ *model.Ingredient, err error) {
	const op = apperr.Op("repo.GetIngredientByID")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()

	var ing model.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(op, apperr.CodeNotFound, fmt.Sprintf("ingredient %d not found", id))
		}
		return nil, apperr.E(op, dbError(err))
	}
	return &ing, nil
}

func (r *ingredientRepo) ListIngredients(ctx context.Context, search string, page model.Page) (_ []model.Ingredient, _ int64, err error) {
	const op = apperr.Op("repo.ListIngredients")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&model.Ingredient{})
		if search != "" {
			db = db.Where(searchCondition, likePattern(search))
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, apperr.E(op, dbError(err))
	}
	var out []model.Ingredient
	if err := r.db.WithContext(ctx).Scopes(filter).
		Order("id ASC").
		Limit(page.Limit()).Offset(page.Offset()).
		Find(&out).Error; err != nil {
		return nil, 0, apperr.E(op, dbError(err))
	}
	return out, total, nil
}

func (r *ingredientRepo) MissingIngredientIDs(ctx context.Context, ids []int64) (_ []int64, err error) {
	const op = apperr.Op("repo.MissingIngredientIDs")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()

	missing, err := missingIngredientIDs(r.db.WithContext(ctx), ids)
	if err != nil {
		return nil, apperr.E(op, dbError(err))
	}
	return missing, nil
}

// missingIngredientIDs работает в переданной сессии, в том числе внутри транзакции.
// Порядок результата повторяет порядок ids.
func missingIngredientIDs(db *gorm.DB, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := db.Model(&model.Ingredient{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	exists := make(map[int64]struct{}, len(found))
	for _, id := range found {
		exists[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := exists[id]; ok {
			continue
		}
		exists[id] = struct{}{}
		missing = append(missing, id)
	}
	return missing, nil
}

func checkIngredientName(tx *gorm.DB, op apperr.Op, name string, excludeID int64) error {
	var count int64
	q := tx.Model(&model.Ingredient{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperr.E(op, dbError(err))
	}
	if count > 0 {
		return ingredientNameTaken(op, name, nil)
	}
	return nil
}

func ingredientNameTaken(op apperr.Op, name string, cause error) error {
	msg := fmt.Sprintf("ingredient %q already exists", name)
	if cause != nil {
		return apperr.E(op, apperr.CodeConflict, msg, cause)
	}
	return apperr.E(op, apperr.CodeConflict, msg)
}
