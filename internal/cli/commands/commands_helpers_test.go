package commands

import (
	"ChefHub/internal/config"
	"ChefHub/internal/handlers"
	"ChefHub/internal/repo"
	"ChefHub/internal/service"
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// captureOut перенаправляет вывод CLI в буфер на время теста.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

// newTestConfig возвращает конфиг клиента с токеном во временном каталоге.
func newTestConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{ServerURL: serverURL, TokenFile: filepath.Join(t.TempDir(), "token")}
}

// newTestServer поднимает настоящий API поверх SQLite в памяти.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := repo.InitDB(":memory:")
	require.NoError(t, err)
	logger := zap.NewNop().Sugar()
	h := handlers.NewHandler(
		service.NewChefService(repo.NewChefRepository(db), logger),
		service.NewIngredientService(repo.NewIngredientRepository(db), logger),
		service.NewDishService(repo.NewDishRepository(db), logger),
		logger,
		&config.Config{AuthSecret: "cli-test-secret"},
	)
	ts := httptest.NewServer(h.Router)
	t.Cleanup(func() {
		ts.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return ts
}
