package handlers

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/config"
	"ChefHub/internal/middleware"
	"ChefHub/internal/model"
	"ChefHub/internal/service"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ChefHandler — регистрация, вход и профили поваров.
type ChefHandler struct {
	ChefService *service.ChefService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewChefHandler(chefService *service.ChefService, logger *zap.SugaredLogger, cfg *config.Config) *ChefHandler {
	return &ChefHandler{ChefService: chefService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateChefRequest struct {
	Name string `json:"name"`
}

type chefDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type chefTokenDTO struct {
	chefDTO
	Token string `json:"token"`
}

func toChefDTO(c *model.Chef) chefDTO {
	return chefDTO{ID: c.ID, Name: c.Name, Username: c.Username, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// Register POST /chefs
func (h *ChefHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	chef, err := h.ChefService.Register(r.Context(), req.Name, req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, chef)
}

// Login POST /chefs/login
func (h *ChefHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	chef, err := h.ChefService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, chef)
}

func (h *ChefHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, chef *model.Chef) {
	token, err := middleware.SetLoginCookie(w, chef.ID, h.Config.AuthSecret)
	if err != nil {
		writeError(w, r, h.Logger, apperr.E(apperr.CodeInternal, err))
		return
	}
	writeData(w, r, status, chefTokenDTO{chefDTO: toChefDTO(chef), Token: token})
}

// Me GET /chefs/me
func (h *ChefHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if !actor.Authenticated() {
		writeError(w, r, h.Logger, apperr.E(apperr.CodeUnauthorized, "authentication required"))
		return
	}
	chef, err := h.ChefService.Get(r.Context(), actor.ChefID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeData(w, r, http.StatusOK, toChefDTO(chef))
}

// Get GET /chefs/{chefId}
func (h *ChefHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "chefId")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	chef, err := h.ChefService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeData(w, r, http.StatusOK, toChefDTO(chef))
}

// UpdateName PUT /chefs/{chefId}
func (h *ChefHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "chefId")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	var req updateChefRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	chef, err := h.ChefService.UpdateName(r.Context(), middleware.ActorFromContext(r.Context()), id, req.Name)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeData(w, r, http.StatusOK, toChefDTO(chef))
}

// List GET /chefs?current&pageSize&search
func (h *ChefHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := service.ParsePage(q.Get("current"), q.Get("pageSize"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	chefs, total, err := h.ChefService.List(r.Context(), q.Get("search"), page)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	out := make([]chefDTO, 0, len(chefs))
	for i := range chefs {
		out = append(out, toChefDTO(&chefs[i]))
	}
	writePage(w, r, out, total, page)
}
