package model

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page — окно выборки списка: номер страницы (с 1) и её размер.
type Page struct {
	Current  int
	PageSize int
}

// Offset возвращает число пропускаемых записей.
func (p Page) Offset() int {
	if p.Current < 1 {
		return 0
	}
	return (p.Current - 1) * p.Limit()
}

// Limit возвращает размер страницы с учётом значения по умолчанию.
func (p Page) Limit() int {
	if p.PageSize < 1 {
		return DefaultPageSize
	}
	return p.PageSize
}
