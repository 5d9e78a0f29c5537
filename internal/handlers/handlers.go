package handlers

import (
	"ChefHub/internal/config"
	"ChefHub/internal/middleware"
	"ChefHub/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	chefService *service.ChefService,
	ingredientService *service.IngredientService,
	dishService *service.DishService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithMetrics)

	// promhttp сжимает ответ сам, поэтому /metrics вне gzip-группы
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, r, http.StatusOK, nil)
	})

	chefHandler := NewChefHandler(chefService, logger, config)
	ingredientHandler := NewIngredientHandler(ingredientService, logger)
	dishHandler := NewDishHandler(dishService, logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithGzip)
		r.Use(middleware.WithAuth(config.AuthSecret))

		// Chef routes
		r.Post("/chefs", chefHandler.Register)
		r.Post("/chefs/login", chefHandler.Login)
		r.Get("/chefs", chefHandler.List)
		r.Get("/chefs/me", chefHandler.Me)
		r.Get("/chefs/{chefId}", chefHandler.Get)
		r.Put("/chefs/{chefId}", chefHandler.UpdateName)

		// Ingredient routes
		r.Post("/ingredients", ingredientHandler.Create)
		r.Get("/ingredients", ingredientHandler.List)
		r.Get("/ingredients/{ingredientId}", ingredientHandler.Get)
		r.Put("/ingredients/{ingredientId}", ingredientHandler.Update)

		// Dish routes
		r.Post("/dishes", dishHandler.Create)
		r.Get("/dishes", dishHandler.List)
		r.Get("/dishes/{dishId}/ingredients", dishHandler.Current)
		r.Put("/dishes/{dishId}/ingredients", dishHandler.Revise)
		r.Get("/dishes/{dishId}/ingredients/history", dishHandler.History)
	})

	return &Handler{Router: r}
}
