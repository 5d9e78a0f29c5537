package model

import (
	"strings"

	"gorm.io/gorm"
)

// searchKeySep разделяет поля в ключе поиска, чтобы шаблон не совпадал
// на стыке двух полей.
const searchKeySep = "\n"

// FoldSearch приводит строку к виду, в котором хранится ключ поиска.
// Регистр сворачивается в Go, а не в SQL: LOWER в SQLite знает только ASCII.
func FoldSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SearchKey собирает ключ поиска из нескольких полей записи.
func SearchKey(fields ...string) string {
	folded := make([]string, len(fields))
	for i, f := range fields {
		folded[i] = FoldSearch(f)
	}
	return strings.Join(folded, searchKeySep)
}

// Хуки заполняют ключ при вставке. Обновления через map пишут search_key
// явно: изменения модели в хуке в такие UPDATE не попадают.

func (c *Chef) BeforeCreate(*gorm.DB) error {
	c.SearchKey = SearchKey(c.Name, c.Username)
	return nil
}

func (i *Ingredient) BeforeCreate(*gorm.DB) error {
	i.SearchKey = SearchKey(i.Name, i.Unit)
	return nil
}

func (d *Dish) BeforeCreate(*gorm.DB) error {
	d.SearchKey = SearchKey(d.Name)
	return nil
}
