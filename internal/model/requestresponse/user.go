package requestresponse

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Email    string `json:"email" example:"newuser@example.com"`
	FullName string `json:"full_name,omitempty" example:"Иван Иванов"`
	Password string `json:"password" example:"P@ssw0rd!"`
}

// UserData : публичные поля пользователя
type UserData struct {
	ID       int64  `json:"id" example:"1"`
	Email    string `json:"email" example:"user@example.com"`
	FullName string `json:"full_name,omitempty" example:"Иван Иванов"`
	Role     string `json:"role" example:"user"`
	Active   bool   `json:"active" example:"true"`
}

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Data UserData `json:"data"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"for example: invalid login or password"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
