package service

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/model"
	"ChefHub/internal/repo"
	"ChefHub/internal/servermon"
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength — минимальная длина пароля при регистрации.
	MinPasswordLength = 6
	// MaxPasswordLength — предел bcrypt в байтах, длиннее GenerateFromPassword не принимает.
	MaxPasswordLength = 72
)

// dummyHash сравнивается с паролем, когда логин не найден, чтобы ответ
// занимал столько же времени, сколько при неверном пароле.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("chefhub-dummy-password"), bcrypt.DefaultCost)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{3,32}$`)

// ErrInvalidCredentials одинакова для неизвестного логина и неверного пароля.
var ErrInvalidCredentials = apperr.E(apperr.CodeUnauthorized, "invalid username or password")

// ChefService — регистрация, аутентификация и профиль повара.
type ChefService struct {
	repo   repo.ChefRepository
	logger *zap.SugaredLogger
}

func NewChefService(r repo.ChefRepository, logger *zap.SugaredLogger) *ChefService {
	return &ChefService{repo: r, logger: logger}
}

// Register создаёт повара, пароль хранится в виде bcrypt-хеша.
func (s *ChefService) Register(ctx context.Context, name, username, password string) (*model.Chef, error) {
	const op = apperr.Op("service.Register")

	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	if name == "" {
		return nil, apperr.E(op, apperr.CodeValidation, "name is required")
	}
	if !usernameRe.MatchString(username) {
		return nil, apperr.E(op, apperr.CodeValidation, "username must be 3-32 characters: letters, digits, . _ -")
	}
	if len(password) < MinPasswordLength {
		return nil, apperr.E(op, apperr.CodeValidation, "password must be at least 6 characters")
	}
	if len(password) > MaxPasswordLength {
		return nil, apperr.E(op, apperr.CodeValidation, "password must be at most 72 bytes")
	}

	// проверяем занятость логина
	existing, err := s.repo.GetChefByUsername(ctx, username)
	if err != nil && !apperr.Is(err, apperr.CodeNotFound) {
		return nil, apperr.E(op, err)
	}
	if existing != nil {
		return nil, apperr.E(op, apperr.CodeConflict, "username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.E(op, apperr.CodeInternal, err)
	}
	chef, err := s.repo.CreateChef(ctx, &model.Chef{Name: name, Username: username, PasswordHash: string(hash)})
	if err != nil {
		return nil, apperr.E(op, err)
	}
	s.logger.Infow("chef registered", "chef_id", chef.ID, "username", chef.Username)
	return chef, nil
}

// Authenticate проверяет пароль. Любая неудача возвращает ErrInvalidCredentials.
func (s *ChefService) Authenticate(ctx context.Context, username, password string) (*model.Chef, error) {
	const op = apperr.Op("service.Authenticate")

	chef, err := s.repo.GetChefByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			servermon.AuthenticationFailCount.Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.E(op, err)
	}
	if chef == nil || bcrypt.CompareHashAndPassword([]byte(chef.PasswordHash), []byte(password)) != nil {
		servermon.AuthenticationFailCount.Inc()
		return nil, ErrInvalidCredentials
	}
	return chef, nil
}

// UpdateName меняет отображаемое имя; менять можно только себя.
func (s *ChefService) UpdateName(ctx context.Context, actor model.Actor, chefID int64, name string) (*model.Chef, error) {
	const op = apperr.Op("service.UpdateChefName")

	if !actor.Is(chefID) {
		return nil, apperr.E(op, apperr.CodeUnauthorized, "chefs can only edit their own profile")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.E(op, apperr.CodeValidation, "name is required")
	}
	chef, err := s.repo.UpdateChefName(ctx, chefID, name)
	if err != nil {
		return nil, apperr.E(op, err)
	}
	return chef, nil
}

func (s *ChefService) Get(ctx context.Context, chefID int64) (*model.Chef, error) {
	chef, err := s.repo.GetChefByID(ctx, chefID)
	if err != nil {
		return nil, apperr.E(apperr.Op("service.GetChef"), err)
	}
	return chef, nil
}

func (s *ChefService) List(ctx context.Context, search string, page model.Page) ([]model.Chef, int64, error) {
	chefs, total, err := s.repo.ListChefs(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, 0, apperr.E(apperr.Op("service.ListChefs"), err)
	}
	return chefs, total, nil
}
