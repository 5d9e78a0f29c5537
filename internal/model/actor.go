package model

// Actor — явный контекст действующего повара, передаётся в каждый
// вызов сервиса. Нулевое значение означает анонимный запрос.
type Actor struct {
	ChefID int64
}

// Anonymous — запрос без идентификации.
var Anonymous = Actor{}

// AsChef возвращает контекст для указанного повара.
func AsChef(chefID int64) Actor {
	return Actor{ChefID: chefID}
}

// Authenticated сообщает, представился ли запрос поваром.
func (a Actor) Authenticated() bool {
	return a.ChefID > 0
}

// Is сообщает, действует ли запрос от имени указанного повара.
func (a Actor) Is(chefID int64) bool {
	return a.Authenticated() && a.ChefID == chefID
}
