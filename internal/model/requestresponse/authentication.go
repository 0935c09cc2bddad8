package requestresponse

import (
	"auth-service/internal/apperror"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// MaxPasswordBytes : bcrypt учитывает только первые 72 байта.
// MaxFieldLength совпадает с VARCHAR(255) в таблице users.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
	MaxFieldLength    = 255
)

// RegisterRequest : тело запроса на регистрацию
type RegisterRequest struct {
	FirstName string `json:"firstName" example:"Ivan"`
	LastName  string `json:"lastName" example:"Petrov"`
	Email     string `json:"email" example:"ivan@example.com"`
	Password  string `json:"password" example:"P@ssw0rd123"`
}

// Normalize убирает пробелы по краям и приводит email к нижнему регистру
func (r *RegisterRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = NormalizeEmail(r.Email)
}

func (r *RegisterRequest) Validate() []ErrorItem {
	var errs []ErrorItem
	switch {
	case r.FirstName == "":
		errs = append(errs, fieldError("firstName", "First name is required!"))
	case tooLong(r.FirstName):
		errs = append(errs, fieldError("firstName", "First name must not exceed 255 chars!"))
	}
	switch {
	case r.LastName == "":
		errs = append(errs, fieldError("lastName", "Last name is required!"))
	case tooLong(r.LastName):
		errs = append(errs, fieldError("lastName", "Last name must not exceed 255 chars!"))
	}
	errs = append(errs, validateEmail(r.Email)...)

	switch {
	case r.Password == "":
		errs = append(errs, fieldError("password", "Password is required!"))
	case len([]rune(r.Password)) < MinPasswordLength:
		errs = append(errs, fieldError("password", "Password length should be at least 8 chars!"))
	case len(r.Password) > MaxPasswordBytes:
		errs = append(errs, fieldError("password", "Password must not exceed 72 bytes!"))
	}
	return errs
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"ivan@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func (r *LoginRequest) Validate() []ErrorItem {
	errs := validateEmail(r.Email)
	if r.Password == "" {
		errs = append(errs, fieldError("password", "Password is required!"))
	}
	return errs
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) []ErrorItem {
	if email == "" {
		return []ErrorItem{fieldError("email", "Email is required!")}
	}
	if tooLong(email) {
		return []ErrorItem{fieldError("email", "Email must not exceed 255 chars!")}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return []ErrorItem{fieldError("email", "Invalid email!")}
	}
	return nil
}

func tooLong(value string) bool {
	return utf8.RuneCountInString(value) > MaxFieldLength
}

func fieldError(path, msg string) ErrorItem {
	return ErrorItem{Type: string(apperror.ValidationError), Msg: msg, Path: path, Location: "body"}
}

// UserIDResponse : ответ на регистрацию, вход и обновление токенов
type UserIDResponse struct {
	UserID string `json:"userId" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
}

// SelfResponse : информация о текущем пользователе
type SelfResponse struct {
	ID        string `json:"id" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	FirstName string `json:"firstName" example:"Ivan"`
	LastName  string `json:"lastName" example:"Petrov"`
	Email     string `json:"email" example:"ivan@example.com"`
	Role      string `json:"role" example:"customer"`
}

// HealthResponse : ответ /health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
