package handlers

import (
	"ChefHub/internal/middleware"
	"ChefHub/internal/model"
	"ChefHub/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// IngredientHandler — каталог ингредиентов.
type IngredientHandler struct {
	IngredientService *service.IngredientService
	Logger            *zap.SugaredLogger
}

func NewIngredientHandler(ingredientService *service.IngredientService, logger *zap.SugaredLogger) *IngredientHandler {
	return &IngredientHandler{IngredientService: ingredientService, Logger: logger}
}

type createIngredientRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

type updateIngredientRequest struct {
	Name model.Optional[string] `json:"name"`
	Unit model.Optional[string] `json:"unit"`
}

type ingredientDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toIngredientDTO(i *model.Ingredient) ingredientDTO {
	return ingredientDTO{ID: i.ID, Name: i.Name, Unit: i.Unit, CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt}
}

// Create POST /ingredients
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createIngredientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	ing, err := h.IngredientService.Create(r.Context(), middleware.ActorFromContext(r.Context()), req.Name, req.Unit)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeData(w, r, http.StatusCreated, toIngredientDTO(ing))
}

// Update PUT /ingredients/{ingredientId}
func (h *IngredientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ingredientId")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	var req updateIngredientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	ing, err := h.IngredientService.Update(r.Context(), middleware.ActorFromContext(r.Context()), id,
		service.IngredientPatch{Name: req.Name, Unit: req.Unit})
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeData(w, r, http.StatusOK, toIngredientDTO(ing))
}

// Get GET /ingredients/{ingredientId}
func (h *IngredientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "ingredientId")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	ing, err := h.IngredientService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeData(w, r, http.StatusOK, toIngredientDTO(ing))
}

// List GET /ingredients?current&pageSize&search
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := service.ParsePage(q.Get("current"), q.Get("pageSize"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	items, total, err := h.IngredientService.List(r.Context(), q.Get("search"), page)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	out := make([]ingredientDTO, 0, len(items))
	for i := range items {
		out = append(out, toIngredientDTO(&items[i]))
	}
	writePage(w, r, out, total, page)
}
