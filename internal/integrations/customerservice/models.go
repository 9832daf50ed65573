package customerservice

// Vehicle модель автомобиля клиента из CustomerService
type Vehicle struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Registration string `json:"registration"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	Size         string `json:"size"` // Класс автомобиля (small, medium, large, van)
	IsSelected   bool   `json:"is_selected"`
}

// Profile модель профиля клиента из CustomerService
type Profile struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PostCode string `json:"post_code"`
}

// ErrorResponse модель ошибки от CustomerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
