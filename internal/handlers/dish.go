package handlers

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/middleware"
	"ChefHub/internal/model"
	"ChefHub/internal/service"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DishHandler — блюда и их версии.
type DishHandler struct {
	DishService *service.DishService
	Logger      *zap.SugaredLogger
}

func NewDishHandler(dishService *service.DishService, logger *zap.SugaredLogger) *DishHandler {
	return &DishHandler{DishService: dishService, Logger: logger}
}

// lineRequest — строка состава во входящем запросе. Оба поля обязательны.
type lineRequest struct {
	IngredientID *int64   `json:"ingredientId"`
	Amount       *float64 `json:"ingredientAmount"`
}

type createDishRequest struct {
	Name        string        `json:"name"`
	Ingredients []lineRequest `json:"ingredients"`
}

type reviseDishRequest struct {
	Name        model.Optional[string] `json:"name"`
	Ingredients []lineRequest          `json:"ingredients"`
}

type lineDTO struct {
	IngredientID   int64   `json:"ingredientId"`
	IngredientName string  `json:"ingredientName"`
	IngredientUnit string  `json:"ingredientUnit"`
	Amount         float64 `json:"ingredientAmount"`
}

type dishDTO struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ChefID        int64      `json:"chefId"`
	ChefName      string     `json:"chefName,omitempty"`
	VersionNumber int        `json:"versionNumber"`
	Ingredients   []lineDTO  `json:"ingredients"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type historyDishDTO struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	ChefID               int64     `json:"chefId"`
	CurrentVersionNumber int       `json:"currentVersionNumber"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type versionDTO struct {
	VersionNumber int       `json:"versionNumber"`
	Ingredients   []lineDTO `json:"ingredients"`
}

type historyDTO struct {
	Dish      historyDishDTO `json:"dish"`
	Histories []versionDTO   `json:"histories"`
}

func toLineDTOs(lines []model.Line) []lineDTO {
	out := make([]lineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineDTO{
			IngredientID:   l.IngredientID,
			IngredientName: l.IngredientName,
			IngredientUnit: l.IngredientUnit,
			Amount:         l.Amount,
		})
	}
	return out
}

func toDishDTO(c *model.DishComposition) dishDTO {
	created := c.Dish.CreatedAt
	return dishDTO{
		ID:            c.Dish.ID,
		Name:          c.Dish.Name,
		ChefID:        c.Dish.ChefID,
		VersionNumber: c.Dish.CurrentVersionNumber,
		Ingredients:   toLineDTOs(c.Lines),
		CreatedAt:     &created,
		UpdatedAt:     c.Dish.UpdatedAt,
	}
}

func toLineInputs(lines []lineRequest) ([]model.LineInput, error) {
	const op = apperr.Op("handlers.toLineInputs")
	out := make([]model.LineInput, 0, len(lines))
	for i, l := range lines {
		if l.IngredientID == nil {
			return nil, apperr.E(op, apperr.CodeValidation, "ingredients["+strconv.Itoa(i)+"].ingredientId is required")
		}
		if l.Amount == nil {
			return nil, apperr.E(op, apperr.CodeValidation, "ingredients["+strconv.Itoa(i)+"].ingredientAmount is required")
		}
		out = append(out, model.LineInput{IngredientID: *l.IngredientID, Amount: *l.Amount})
	}
	return out, nil
}

// Create POST /dishes
func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	lines, err := toLineInputs(req.Ingredients)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	dish, err := h.DishService.CreateDish(r.Context(), middleware.ActorFromContext(r.Context()),
		service.CreateDishRequest{Name: req.Name, Lines: lines})
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeData(w, r, http.StatusCreated, toDishDTO(dish))
}

// Revise PUT /dishes/{dishId}/ingredients
func (h *DishHandler) Revise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "dishId")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	var req reviseDishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	lines, err := toLineInputs(req.Ingredients)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	dish, err := h.DishService.ReviseDish(r.Context(), middleware.ActorFromContext(r.Context()), id,
		service.RevisionRequest{Name: req.Name, Lines: lines})
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	out := toDishDTO(dish)
	out.CreatedAt = nil
	writeData(w, r, http.StatusOK, out)
}

// Current GET /dishes/{dishId}/ingredients
func (h *DishHandler) Current(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "dishId")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	dish, err := h.DishService.CurrentComposition(r.Context(), middleware.ActorFromContext(r.Context()), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeData(w, r, http.StatusOK, toDishDTO(dish))
}

// History GET /dishes/{dishId}/ingredients/history?current&pageSize
func (h *DishHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "dishId")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	q := r.URL.Query()
	page, err := service.ParsePage(q.Get("current"), q.Get("pageSize"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	history, err := h.DishService.VersionHistory(r.Context(), id, page)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	out := historyDTO{
		Dish: historyDishDTO{
			ID:                   history.Dish.ID,
			Name:                 history.Dish.Name,
			ChefID:               history.Dish.ChefID,
			CurrentVersionNumber: history.Dish.CurrentVersionNumber,
			CreatedAt:            history.Dish.CreatedAt,
			UpdatedAt:            history.Dish.UpdatedAt,
		},
		Histories: make([]versionDTO, 0, len(history.Versions)),
	}
	for _, v := range history.Versions {
		out.Histories = append(out.Histories, versionDTO{VersionNumber: v.VersionNumber, Ingredients: toLineDTOs(v.Lines)})
	}
	writePage(w, r, out, history.Total, page)
}

// List GET /dishes?current&pageSize&search&chefId
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := service.ParsePage(q.Get("current"), q.Get("pageSize"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	var chefID int64
	if s := strings.TrimSpace(q.Get("chefId")); s != "" {
		chefID, err = strconv.ParseInt(s, 10, 64)
		if err != nil || chefID < 1 {
			writeError(w, r, h.Logger, apperr.E(apperr.CodeValidation, "chefId must be a positive integer"))
			return
		}
	}
	dishes, total, err := h.DishService.ListDishes(r.Context(), service.DishListRequest{
		Search: q.Get("search"),
		ChefID: chefID,
		Page:   page,
	})
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	out := make([]dishDTO, 0, len(dishes))
	for i := range dishes {
		d := toDishDTO(&dishes[i])
		d.ChefName = dishes[i].ChefName
		out = append(out, d)
	}
	writePage(w, r, out, total, page)
}
