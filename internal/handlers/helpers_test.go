package handlers_test

import (
	"ChefHub/internal/config"
	"ChefHub/internal/handlers"
	"ChefHub/internal/repo"
	"ChefHub/internal/service"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// newTestRouter собирает полный стек поверх изолированной SQLite в памяти.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := repo.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := zap.NewNop().Sugar()
	cfg := &config.Config{AuthSecret: testSecret}
	chefSvc := service.NewChefService(repo.NewChefRepository(db), logger)
	ingredientSvc := service.NewIngredientService(repo.NewIngredientRepository(db), logger)
	dishSvc := service.NewDishService(repo.NewDishRepository(db), logger)
	return handlers.NewHandler(chefSvc, ingredientSvc, dishSvc, logger, cfg).Router
}

type response struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

func (r response) data() map[string]any {
	d, _ := r.Body["data"].(map[string]any)
	return d
}

func (r response) list() []any {
	d, _ := r.Body["data"].([]any)
	return d
}

func (r response) errorCode() string {
	e, _ := r.Body["error"].(map[string]any)
	s, _ := e["code"].(string)
	return s
}

// do выполняет запрос; token пустой — анонимный запрос.
func do(t *testing.T, h http.Handler, method, path string, body any, token string) response {
	t.Helper()
	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(v))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	out := response{Code: rr.Code, Header: rr.Header()}
	if rr.Body.Len() > 0 && rr.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(rr.Body.Bytes(), &out.Body)
	}
	return out
}

// registerChef регистрирует повара и возвращает его id и токен.
func registerChef(t *testing.T, h http.Handler, username string) (int64, string) {
	t.Helper()
	resp := do(t, h, http.MethodPost, "/chefs", map[string]string{
		"name": "Chef " + username, "username": username, "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code, "register %s: %v", username, resp.Body)
	return int64(resp.data()["id"].(float64)), resp.data()["token"].(string)
}

func createIngredient(t *testing.T, h http.Handler, token, name, unit string) int64 {
	t.Helper()
	resp := do(t, h, http.MethodPost, "/ingredients", map[string]string{"name": name, "unit": unit}, token)
	require.Equal(t, http.StatusCreated, resp.Code, "ingredient %s: %v", name, resp.Body)
	return int64(resp.data()["id"].(float64))
}

func lines(pairs ...any) []map[string]any {
	out := make([]map[string]any, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, map[string]any{"ingredientId": pairs[i], "ingredientAmount": pairs[i+1]})
	}
	return out
}

func dishPath(id int64, suffix string) string {
	return fmt.Sprintf("/dishes/%d%s", id, suffix)
}
