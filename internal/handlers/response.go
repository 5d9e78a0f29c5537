package handlers

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/model"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// envelope — общий формат всех ответов API.
type envelope struct {
	Success  bool       `json:"success"`
	Data     any        `json:"data,omitempty"`
	Total    *int64     `json:"total,omitempty"`
	Current  int        `json:"current,omitempty"`
	PageSize int        `json:"pageSize,omitempty"`
	Message  string     `json:"message,omitempty"`
	Error    *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    apperr.Code    `json:"code"`
	Message string         `json:"message"`
	Details apperr.Details `json:"details,omitempty"`
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, envelope{Success: true, Data: data})
}

func writePage(w http.ResponseWriter, r *http.Request, data any, total int64, page model.Page) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, envelope{
		Success:  true,
		Data:     data,
		Total:    &total,
		Current:  page.Current,
		PageSize: page.Limit(),
	})
}

// writeError переводит код ошибки в HTTP-статус. Неклассифицированные и
// внутренние ошибки логируются, клиент получает общее сообщение.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, err error) {
	code := apperr.ErrorCode(err)
	body := &errorBody{Code: code, Message: err.Error(), Details: apperr.ErrorDetails(err)}
	if code == "" || code == apperr.CodeInternal {
		logger.Errorw("request failed", "method", r.Method, "uri", r.RequestURI, "error", err)
		body = &errorBody{Code: apperr.CodeInternal, Message: "internal server error"}
	}
	render.Status(r, apperr.HTTPStatus(body.Code))
	render.JSON(w, r, envelope{Success: false, Message: body.Message, Error: body})
}

func decodeJSON(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return apperr.E(apperr.Op("handlers.decodeJSON"), apperr.CodeValidation, "malformed JSON body")
	}
	return nil
}

// pathID разбирает положительный целый id из параметра маршрута.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.E(apperr.Op("handlers.pathID"), apperr.CodeValidation, name+" must be a positive integer")
	}
	return id, nil
}
