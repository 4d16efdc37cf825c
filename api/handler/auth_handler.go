package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lawconnect/api/middleware"
	"lawconnect/internal/dto"
	"lawconnect/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const maxCertificateSize = 5 * 1024 * 1024

var allowedCertificateExts = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true,
}

type AuthHandler struct {
	Service           *service.AccountService
	Validate          *validator.Validate
	RefreshCookieName string
	CookieDomain      string
	SecureCookies     bool
	SameSite          http.SameSite
}

func NewAuthHandler(svc *service.AccountService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:           svc,
		Validate:          validate,
		RefreshCookieName: "refresh_token",
		SecureCookies:     true,
		SameSite:          http.SameSiteStrictMode,
	}
}

func (h *AuthHandler) RegisterCustomer(c echo.Context) error {
	var req dto.RegisterCustomerRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.RegisterCustomerInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	}
	user, err := h.Service.RegisterCustomer(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) RegisterLawyer(c echo.Context) error {
	req := dto.RegisterLawyerRequest{
		Username:        c.FormValue("username"),
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		PasswordConfirm: c.FormValue("password_confirm"),
		Specialty:       c.FormValue("specialty"),
		BarNumber:       c.FormValue("bar_number"),
	}
	years, err := strconv.Atoi(c.FormValue("years_experience"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid years_experience"))
	}
	req.YearsExperience = years
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	certificate, err := c.FormFile("bar_certificate")
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("bar_certificate file is required"))
	}
	file, err := openCertificate(certificate)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	defer file.Close()

	input := service.RegisterLawyerInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Specialty:       req.Specialty,
		YearsExperience: req.YearsExperience,
		BarNumber:       req.BarNumber,
		CertificateName: certificate.Filename,
		Certificate:     file,
	}
	user, err := h.Service.RegisterLawyer(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.UserResponseFromEntity(user))
}

// VerifyEmail is the target of the link in the verification email.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.Param("token")
	if _, err := h.Service.VerifyEmail(c.Request().Context(), token); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "email verified, you can now log in"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: stringPtr(c.RealIP()),
		UserAgent: stringPtr(c.Request().UserAgent()),
	}
	result, err := h.Service.Login(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	h.setRefreshCookie(c, result.RefreshToken, result.RefreshExpiresIn)
	return c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken := h.readRefreshCookie(c)
	if refreshToken == "" {
		return writeError(c, http.StatusUnauthorized, errors.New("missing refresh token"))
	}
	result, err := h.Service.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		return writeServiceError(c, err)
	}
	h.setRefreshCookie(c, result.RefreshToken, result.RefreshExpiresIn)
	return c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	if err := h.Service.Logout(c.Request().Context(), sessionID, &userID, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, err)
	}
	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) LogoutAll(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	if err := h.Service.LogoutAll(c.Request().Context(), userID, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, err)
	}
	h.clearRefreshCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) PasswordForgot(c echo.Context) error {
	var req dto.PasswordForgotRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var req dto.PasswordResetRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	user, err := h.Service.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) UpdateCustomerSettings(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.UpdateCustomerSettingsRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.UpdateCustomerSettingsInput{
		Username:    req.Username,
		Email:       req.Email,
		NewPassword: req.NewPassword,
	}
	user, err := h.Service.UpdateCustomerSettings(c.Request().Context(), userID, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) UpdateLawyerSettings(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	req := dto.UpdateLawyerSettingsRequest{
		Username:    c.FormValue("username"),
		Email:       c.FormValue("email"),
		NewPassword: c.FormValue("new_password"),
		Specialty:   c.FormValue("specialty"),
		BarNumber:   c.FormValue("bar_number"),
	}
	if raw := c.FormValue("years_experience"); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("invalid years_experience"))
		}
		req.YearsExperience = &years
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	input := service.UpdateLawyerSettingsInput{
		Username:        req.Username,
		Email:           req.Email,
		NewPassword:     req.NewPassword,
		Specialty:       req.Specialty,
		YearsExperience: req.YearsExperience,
		BarNumber:       req.BarNumber,
	}
	if certificate, err := c.FormFile("bar_certificate"); err == nil {
		file, err := openCertificate(certificate)
		if err != nil {
			return writeError(c, http.StatusBadRequest, err)
		}
		defer file.Close()
		input.CertificateName = certificate.Filename
		input.Certificate = file
	}

	user, err := h.Service.UpdateLawyerSettings(c.Request().Context(), userID, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string, expiresIn int64) {
	if token == "" {
		return
	}
	maxAge := int(expiresIn)
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetCookie(&http.Cookie{
		Name:     h.RefreshCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   maxAge,
		Expires:  time.Now().Add(time.Duration(expiresIn) * time.Second),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: h.SameSite,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.RefreshCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: h.SameSite,
	})
}

func (h *AuthHandler) readRefreshCookie(c echo.Context) string {
	cookie, err := c.Cookie(h.RefreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func openCertificate(header *multipart.FileHeader) (multipart.File, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedCertificateExts[ext] {
		return nil, errors.New("only pdf/jpg/jpeg/png certificates allowed")
	}
	if header.Size > maxCertificateSize {
		return nil, errors.New("certificate too large (max 5MB)")
	}
	return header.Open()
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrEmptyAnswer):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailNotVerified), errors.Is(err, service.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, service.ErrQuestionNotFound), errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	}
	return writeError(c, status, err)
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
