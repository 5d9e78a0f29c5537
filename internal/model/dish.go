package model

import "time"

// Dish — блюдо повара. CurrentVersionNumber указывает, какие строки
// DishIngredientLine составляют актуальный состав.
type Dish struct {
	ID     int64 `gorm:"primaryKey"`
	ChefID int64 `gorm:"not null;uniqueIndex:idx_dishes_chef_name,priority:1"`

	// Связи
	Chef *Chef `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	// Имя уникально в рамках одного повара
	Name                 string `gorm:"not null;uniqueIndex:idx_dishes_chef_name,priority:2"`
	CurrentVersionNumber int    `gorm:"not null"`
	SearchKey            string `gorm:"not null;default:''"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DishIngredientLine — строка состава блюда конкретной версии.
// Строки только добавляются: ревизия вставляет полный новый набор
// со своим VersionNumber, старые строки остаются историей.
type DishIngredientLine struct {
	ID            int64 `gorm:"primaryKey"`
	DishID        int64 `gorm:"not null;uniqueIndex:idx_lines_dish_ingredient_version,priority:1;index:idx_lines_dish_version,priority:1"`
	IngredientID  int64 `gorm:"not null;uniqueIndex:idx_lines_dish_ingredient_version,priority:2"`
	VersionNumber int   `gorm:"not null;uniqueIndex:idx_lines_dish_ingredient_version,priority:3;index:idx_lines_dish_version,priority:2"`

	Amount float64 `gorm:"not null"`

	Dish       *Dish       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Ingredient *Ingredient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Line — строка состава, дополненная именем и единицей ингредиента.
type Line struct {
	IngredientID   int64
	IngredientName string
	IngredientUnit string
	Amount         float64
}

// LineInput — строка состава во входящем запросе.
type LineInput struct {
	IngredientID int64
	Amount       float64
}

// DishComposition — метаданные блюда вместе со строками одной версии.
type DishComposition struct {
	Dish     Dish
	ChefName string
	Lines    []Line
}

// VersionSnapshot — состав блюда, зафиксированный в одной версии.
type VersionSnapshot struct {
	VersionNumber int
	Lines         []Line
}

// DishHistory — страница истории версий блюда (сначала новые).
type DishHistory struct {
	Dish     Dish
	Versions []VersionSnapshot
	Total    int64
}

// EnrichLine собирает Line из строки БД с подгруженным ингредиентом.
func EnrichLine(l DishIngredientLine) Line {
	out := Line{IngredientID: l.IngredientID, Amount: l.Amount}
	if l.Ingredient != nil {
		out.IngredientName = l.Ingredient.Name
		out.IngredientUnit = l.Ingredient.Unit
	}
	return out
}
