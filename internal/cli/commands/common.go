package commands

import (
	"ChefHub/internal/cli/api"
	fsrepo "ChefHub/internal/cli/repo/fs"
	"ChefHub/internal/config"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

func tokenStore(cfg *config.Config) fsrepo.TokenFSStore {
	return fsrepo.TokenFSStore{Path: cfg.TokenFile}
}

// newClient создаёт API-клиент. Если requireToken, отсутствие токена — ошибка.
func newClient(cfg *config.Config, requireToken bool) (*api.Client, error) {
	token, err := tokenStore(cfg).Load()
	if err != nil {
		if requireToken {
			if errors.Is(err, fsrepo.ErrNoToken) {
				return nil, errors.New("not logged in: run login or register first")
			}
			return nil, err
		}
		token = ""
	}
	return api.NewClient(cfg.ServerURL, token), nil
}

// Типы ответов сервера, которые печатает CLI.
type chefView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ingredientView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

type lineView struct {
	IngredientID   int64   `json:"ingredientId"`
	IngredientName string  `json:"ingredientName"`
	IngredientUnit string  `json:"ingredientUnit"`
	Amount         float64 `json:"ingredientAmount"`
}

type dishView struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ChefID        int64      `json:"chefId"`
	ChefName      string     `json:"chefName,omitempty"`
	VersionNumber int        `json:"versionNumber"`
	Ingredients   []lineView `json:"ingredients"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type historyView struct {
	Dish struct {
		ID                   int64  `json:"id"`
		Name                 string `json:"name"`
		CurrentVersionNumber int    `json:"currentVersionNumber"`
	} `json:"dish"`
	Histories []struct {
		VersionNumber int        `json:"versionNumber"`
		Ingredients   []lineView `json:"ingredients"`
	} `json:"histories"`
}

// lineInput — строка состава в запросе.
type lineInput struct {
	IngredientID int64   `json:"ingredientId"`
	Amount       float64 `json:"ingredientAmount"`
}

// parseLines разбирает состав вида "101:200,102:2.5".
func parseLines(s string) ([]lineInput, error) {
	var out []lineInput
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idStr, amountStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: invalid line %q, want <ingredientId>:<amount>", ErrUsage, part)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("%w: invalid ingredient id %q", ErrUsage, idStr)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid amount %q", ErrUsage, amountStr)
		}
		out = append(out, lineInput{IngredientID: id, Amount: amount})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one <ingredientId>:<amount> is required", ErrUsage)
	}
	return out, nil
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrUsage, what)
	}
	return id, nil
}

func printLines(w io.Writer, lines []lineView) {
	for _, l := range lines {
		fmt.Fprintf(w, "  - #%d %s: %s %s\n", l.IngredientID, l.IngredientName,
			strconv.FormatFloat(l.Amount, 'f', -1, 64), l.IngredientUnit)
	}
}

func printDish(w io.Writer, d dishView) {
	owner := fmt.Sprintf("chef #%d", d.ChefID)
	if d.ChefName != "" {
		owner = fmt.Sprintf("%s (chef #%d)", d.ChefName, d.ChefID)
	}
	fmt.Fprintf(w, "Dish #%d %q by %s, version %d\n", d.ID, d.Name, owner, d.VersionNumber)
	printLines(w, d.Ingredients)
}
