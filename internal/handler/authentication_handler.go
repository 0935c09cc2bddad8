package handler

import (
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/security"
	"net/http"
)

type AuthenticationHandler struct {
	authService ports.AuthenticationService
	cookies     CookieSettings
}

func NewAuthenticationHandler(authService ports.AuthenticationService, cookies CookieSettings) *AuthenticationHandler {
	return &AuthenticationHandler{authService: authService, cookies: cookies}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Проверяет email и пароль, выставляет cookies accessToken и refreshToken
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 201 {object} requestresponse.UserIDResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Ошибка валидации или неверные email/пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if errs := decodeJSON(w, r, &req); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	tokens, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.cookies.setAuthCookies(w, tokens)
	writeJSON(w, http.StatusCreated, requestresponse.UserIDResponse{UserID: tokens.UserID})
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Обменивает refresh токен из cookie на новую пару, старый refresh токен больше недействителен
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.UserIDResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный, просроченный или уже использованный токен"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(security.RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	tokens, err := h.authService.RefreshToken(r.Context(), refreshToken)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.cookies.setAuthCookies(w, tokens)
	writeJSON(w, http.StatusOK, requestresponse.UserIDResponse{UserID: tokens.UserID})
}

// Logout godoc
// @Summary Завершение сессии
// @Description Удаляет запись refresh токена из cookie и очищает cookies
// @Tags Authentication
// @Produce json
// @Success 200 {object} object
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var refreshToken string
	if cookie, err := r.Cookie(security.RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.authService.Logout(r.Context(), claims.Subject, refreshToken); err != nil {
		WriteError(w, err)
		return
	}

	h.cookies.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, struct{}{})
}

// LogoutAll godoc
// @Summary Завершение всех сессий
// @Description Удаляет все записи refresh токенов пользователя
// @Tags Authentication
// @Produce json
// @Success 200 {object} object
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/logout/all [post]
func (h *AuthenticationHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.authService.LogoutAll(r.Context(), claims.Subject); err != nil {
		WriteError(w, err)
		return
	}

	h.cookies.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, struct{}{})
}
