package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern определяет допустимый формат email
// Упрощенная проверка: local@domain без пробелов
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	// MaxEmailLen максимальная длина email
	MaxEmailLen = 254
	// MinDisplayNameLen минимальная длина отображаемого имени
	MinDisplayNameLen = 1
	// MaxDisplayNameLen максимальная длина отображаемого имени
	MaxDisplayNameLen = 64
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
)

// ValidateEmail проверяет, что email соответствует требованиям
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email format is invalid")
	}

	return nil
}

// ValidateDisplayName проверяет отображаемое имя
// Длина: 1-64 символа
func ValidateDisplayName(name string) error {
	if name == "" {
		return fmt.Errorf("display name cannot be empty")
	}

	if len(name) > MaxDisplayNameLen {
		return fmt.Errorf("display name must not exceed %d characters", MaxDisplayNameLen)
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// Минимум 8 символов
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}
