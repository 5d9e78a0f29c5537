package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	got, err := parseLines("101:200, 102:2.5")
	require.NoError(t, err)
	assert.Equal(t, []lineInput{{IngredientID: 101, Amount: 200}, {IngredientID: 102, Amount: 2.5}}, got)

	for _, bad := range []string{"", ",", "101", "x:1", "0:1", "101:abc"} {
		_, err := parseLines(bad)
		assert.ErrorIs(t, err, ErrUsage, "input %q", bad)
	}
}

func TestCLI_EndToEnd(t *testing.T) {
	ts := newTestServer(t)
	cfg := newTestConfig(t, ts.URL)
	out := captureOut(t)
	ctx := context.Background()

	require.NoError(t, registerCmd{}.Run(ctx, cfg, []string{"Gordon", "gordon", "secret1"}))
	assert.Contains(t, out.String(), "Registered chef #1 Gordon (gordon)")

	if runtime.GOOS != "windows" {
		st, err := os.Stat(cfg.TokenFile)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
	}

	require.NoError(t, loginCmd{}.Run(ctx, cfg, []string{"gordon", "secret1"}))
	assert.Contains(t, out.String(), "Logged in as gordon (chef #1)")

	require.NoError(t, statusCmd{}.Run(ctx, cfg, nil))
	assert.Contains(t, out.String(), "Logged in as gordon (Gordon, chef #1)")

	require.NoError(t, ingredientAddCmd{}.Run(ctx, cfg, []string{"Rice", "g"}))
	require.NoError(t, ingredientAddCmd{}.Run(ctx, cfg, []string{"Egg", "pcs"}))
	out.Reset()
	require.NoError(t, ingredientsCmd{}.Run(ctx, cfg, nil))
	assert.Contains(t, out.String(), "#1 Rice (g)")
	assert.Contains(t, out.String(), "Total: 2")

	out.Reset()
	require.NoError(t, dishCreateCmd{}.Run(ctx, cfg, []string{"Fried Rice", "1:200,2:2"}))
	assert.Contains(t, out.String(), `Dish #1 "Fried Rice" by chef #1, version 1`)
	assert.Contains(t, out.String(), "#1 Rice: 200 g")

	out.Reset()
	require.NoError(t, dishReviseCmd{}.Run(ctx, cfg, []string{"1", "1:250,2:3", "Egg", "Fried", "Rice"}))
	assert.Contains(t, out.String(), `Dish #1 "Egg Fried Rice" by chef #1, version 2`)

	out.Reset()
	require.NoError(t, dishGetCmd{}.Run(ctx, cfg, []string{"1"}))
	assert.Contains(t, out.String(), "version 2")
	assert.Contains(t, out.String(), "#2 Egg: 3 pcs")

	out.Reset()
	require.NoError(t, dishHistoryCmd{}.Run(ctx, cfg, []string{"1"}))
	assert.Contains(t, out.String(), "current version 2 (2 versions)")
	assert.Contains(t, out.String(), "Version 1:")

	out.Reset()
	require.NoError(t, dishesCmd{}.Run(ctx, cfg, []string{"fried"}))
	assert.Contains(t, out.String(), `"Egg Fried Rice" by Gordon (chef #1), version 2`)

	// несуществующий ингредиент
	err := dishCreateCmd{}.Run(ctx, cfg, []string{"Soup", "99:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestCLI_RequiresLogin(t *testing.T) {
	ts := newTestServer(t)
	cfg := newTestConfig(t, ts.URL)
	captureOut(t)

	err := statusCmd{}.Run(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	err = dishCreateCmd{}.Run(context.Background(), cfg, []string{"Soup", "1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestLogin_Run_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid username or password","error":{"code":"UNAUTHORIZED","message":"invalid username or password"}}`))
	}))
	defer ts.Close()
	cfg := newTestConfig(t, ts.URL)

	err := loginCmd{}.Run(context.Background(), cfg, []string{"alice", "bad"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED: invalid username or password", err.Error())
	_, statErr := os.Stat(cfg.TokenFile)
	assert.True(t, os.IsNotExist(statErr), "token must not be stored on failure")

	assert.Equal(t, ErrUsage, loginCmd{}.Run(context.Background(), cfg, []string{"onlyUsername"}))
	assert.Equal(t, ErrUsage, registerCmd{}.Run(context.Background(), cfg, []string{"a", "b"}))
}

func TestDispatch_ExitCodes(t *testing.T) {
	ts := newTestServer(t)
	cfg := newTestConfig(t, ts.URL)
	out := captureOut(t)
	ctx := context.Background()

	assert.Equal(t, ExitUsage, Dispatch(ctx, cfg, nil))
	assert.Contains(t, out.String(), "ChefHub CLI")

	assert.Equal(t, ExitOK, Dispatch(ctx, cfg, []string{"help"}))
	assert.Equal(t, ExitOK, Dispatch(ctx, cfg, []string{"help", "dish-create"}))
	assert.Contains(t, out.String(), "Usage: dish-create <name> <id:amount,...>")

	assert.Equal(t, 2, Dispatch(ctx, cfg, []string{"nope"}))
	assert.Equal(t, 2, Dispatch(ctx, cfg, []string{"dish", "abc"}))
	assert.Equal(t, 2, Dispatch(ctx, cfg, []string{"dish-create", "Soup", "bad"}))

	assert.Equal(t, 1, Dispatch(ctx, cfg, []string{"dish", "42"}))
	assert.Contains(t, out.String(), "dish error: NOT_FOUND: dish 42 not found")

	assert.Equal(t, 0, Dispatch(ctx, cfg, []string{"register", "Gordon", "gordon", "secret1"}))
	assert.Equal(t, 0, Dispatch(ctx, cfg, []string{"dishes"}))
	assert.Contains(t, out.String(), "No dishes")
}

func TestDispatch_CommandHelpAndCase(t *testing.T) {
	cfg := newTestConfig(t, "http://127.0.0.1:1")
	ctx := context.Background()

	out := captureOut(t)
	assert.Equal(t, ExitOK, Dispatch(ctx, cfg, []string{"DISH-HISTORY", "--help"}))
	assert.Equal(t, "Usage: dish-history <dishId> [page]\n", out.String())
}

func TestDispatch_ReportsServerDetails(t *testing.T) {
	ts := newTestServer(t)
	cfg := newTestConfig(t, ts.URL)
	ctx := context.Background()
	require.Equal(t, ExitOK, Dispatch(ctx, cfg, []string{"register", "Gordon", "gordon", "secret1"}))

	out := captureOut(t)
	assert.Equal(t, ExitFailure, Dispatch(ctx, cfg, []string{"dish-create", "Soup", "77:1"}))
	assert.Contains(t, out.String(), "dish-create error: NOT_FOUND")
	assert.Contains(t, out.String(), "missingIngredientIds: [77]")
}

func TestFormatGlobalUsage_Sections(t *testing.T) {
	usage := FormatGlobalUsage()
	account := strings.Index(usage, "Account:")
	catalog := strings.Index(usage, "Ingredient catalog:")
	dishes := strings.Index(usage, "Dishes:")
	require.True(t, account > 0 && catalog > account && dishes > catalog, usage)

	// каждая команда в своём разделе
	assert.Greater(t, strings.Index(usage, "ingredient-add"), catalog)
	assert.Less(t, strings.Index(usage, "ingredient-add"), dishes)
	assert.Greater(t, strings.Index(usage, "dish-create"), dishes)
	assert.Less(t, strings.Index(usage, "login <username>"), catalog)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() { Register(SectionAccount, loginCmd{}) })
}
