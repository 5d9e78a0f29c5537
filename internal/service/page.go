package service

import (
	"ChefHub/internal/apperr"
	"ChefHub/internal/model"
	"fmt"
	"strconv"
	"strings"
)

// ParsePage разбирает параметры current/pageSize из строки запроса.
// Пустые значения заменяются значениями по умолчанию.
func ParsePage(current, pageSize string) (model.Page, error) {
	const op = apperr.Op("service.ParsePage")
	p := model.Page{Current: 1, PageSize: model.DefaultPageSize}

	if s := strings.TrimSpace(current); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return model.Page{}, apperr.E(op, apperr.CodeValidation, "current must be a positive integer")
		}
		p.Current = v
	}
	if s := strings.TrimSpace(pageSize); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > model.MaxPageSize {
			return model.Page{}, apperr.E(op, apperr.CodeValidation,
				fmt.Sprintf("pageSize must be an integer between 1 and %d", model.MaxPageSize))
		}
		p.PageSize = v
	}
	return p, nil
}
