package handler

import (
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/security"
	"net/http"
)

type UserHandler struct {
	userService ports.UserService
	cookies     CookieSettings
}

func NewUserHandler(userService ports.UserService, cookies CookieSettings) *UserHandler {
	return &UserHandler{userService: userService, cookies: cookies}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя с ролью customer и выставляет cookies accessToken и refreshToken
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.UserIDResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Ошибка валидации или email уже занят"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if errs := decodeJSON(w, r, &req); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	tokens, err := h.userService.Register(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.cookies.setAuthCookies(w, tokens)
	writeJSON(w, http.StatusCreated, requestresponse.UserIDResponse{UserID: tokens.UserID})
}

// Self godoc
// @Summary Текущий пользователь
// @Description Возвращает данные пользователя по access токену из cookie или заголовка Authorization
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.SelfResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/self [get]
func (h *UserHandler) Self(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.userService.GetUser(r.Context(), claims.Subject)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.SelfResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
	})
}
