package api

// Wrapper оборачивает полезную нагрузку запроса/ответа в поле data
// (формат, который ожидает фронтенд Negatiview)
type Wrapper[T any] struct {
	Data T `json:"data"`
}

// Wrap создает Wrapper вокруг значения
func Wrap[T any](data T) Wrapper[T] {
	return Wrapper[T]{Data: data}
}

// SignUpRequest представляет запрос на регистрацию нового пользователя
type SignUpRequest struct {
	Email       string `json:"email"`        // email пользователя (уникальный)
	Password    string `json:"password"`     // пароль в открытом виде (хешируется на сервере)
	DisplayName string `json:"display_name"` // отображаемое имя
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль в открытом виде
}

// UserUpdateRequest представляет запрос на обновление профиля
// Password опционален: пустая строка означает "не менять"
type UserUpdateRequest struct {
	Email           string `json:"email"`
	DisplayName     string `json:"display_name"`
	Biography       string `json:"biography"`
	ProfileImageURL string `json:"profile_image_url"`
	Password        string `json:"password,omitempty"`
}

// UserResponse представляет профиль пользователя в ответах API
type UserResponse struct {
	Email           string `json:"email"`             // email пользователя
	DisplayName     string `json:"display_name"`      // отображаемое имя
	AccessToken     string `json:"access_token"`      // JWT access token текущей сессии
	Biography       string `json:"biography"`         // биография (может быть пустой)
	ProfileImageURL string `json:"profile_image_url"` // URL аватара (может быть пустым)
}

// AuthResponse представляет ответ на успешный signup/login
type AuthResponse struct {
	Status  string       `json:"status"`            // "success"
	Message string       `json:"message,omitempty"` // сообщение об успехе
	Data    UserResponse `json:"data"`
}

// ErrorResponse представляет единый формат ошибки API
type ErrorResponse struct {
	Status  string `json:"status"`  // "fail" для 4xx, "error" для 5xx
	Message string `json:"message"` // описание ошибки
}
