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

// ChefRepository — доступ к записям поваров.
type ChefRepository interface {
	CreateChef(ctx context.Context, chef *model.Chef) (*model.Chef, error)
	GetChefByID(ctx context.Context, id int64) (*model.Chef, error)
	GetChefByUsername(ctx context.Context, username string) (*model.Chef, error)
	UpdateChefName(ctx context.Context, id int64, name string) (*model.Chef, error)
	ListChefs(ctx context.Context, search string, page model.Page) ([]model.Chef, int64, error)
}

type chefRepo struct {
	db *gorm.DB
}

// NewChefRepository создаёт gorm-реализацию ChefRepository.
func NewChefRepository(db *gorm.DB) ChefRepository {
	return &chefRepo{db: db}
}

func (r *chefRepo) CreateChef(ctx context.Context, chef *model.Chef) (_ *model.Chef, err error) {
	const op = apperr.Op("repo.CreateChef")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	if err := r.db.WithContext(ctx).Create(chef).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.E(op, apperr.CodeConflict, fmt.Sprintf("username %q is already taken", chef.Username), err)
		}
		return nil, apperr.E(op, dbError(err))
	}
	return chef, nil
}

func (r *chefRepo) GetChefByID(ctx context.Context, id int64) (_ *model.Chef, err error) {
	const op = apperr.Op("repo.GetChefByID")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()

	var c model.Chef
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(op, apperr.CodeNotFound, fmt.Sprintf("chef %d not found", id))
		}
		return nil, apperr.E(op, dbError(err))
	}
	return &c, nil
}

func (r *chefRepo) GetChefByUsername(ctx context.Context, username string) (_ *model.Chef, err error) {
	const op = apperr.Op("repo.GetChefByUsername")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()

	var c model.Chef
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(op, apperr.CodeNotFound, fmt.Sprintf("chef %q not found", username))
		}
		return nil, apperr.E(op, dbError(err))
	}
	return &c, nil
}

func (r *chefRepo) UpdateChefName(ctx context.Context, id int64, name string) (_ *model.Chef, err error) {
	const op = apperr.Op("repo.UpdateChefName")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	var c model.Chef
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.E(op, apperr.CodeNotFound, fmt.Sprintf("chef %d not found", id))
			}
			return apperr.E(op, dbError(err))
		}
		// только имя; username и пароль через API не меняются
		updates := map[string]any{"name": name, "search_key": model.SearchKey(name, c.Username)}
		if err := tx.Model(&c).Updates(updates).Error; err != nil {
			return apperr.E(op, dbError(err))
		}
		return tx.First(&c, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *chefRepo) ListChefs(ctx context.Context, search string, page model.Page) (_ []model.Chef, _ int64, err error) {
	const op = apperr.Op("repo.ListChefs")
	defer servermon.DurationObserver(servermon.DBQueryDurationHistogram, string(op))()
	defer servermon.ErrorCounter(servermon.DBQueryErrorCount, &err, string(op))

	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&model.Chef{})
		if search != "" {
			db = db.Where(searchCondition, likePattern(search))
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, apperr.E(op, dbError(err))
	}
	var chefs []model.Chef
	if err := r.db.WithContext(ctx).Scopes(filter).
		Order("id ASC").
		Limit(page.Limit()).Offset(page.Offset()).
		Find(&chefs).Error; err != nil {
		return nil, 0, apperr.E(op, dbError(err))
	}
	return chefs, total, nil
}
