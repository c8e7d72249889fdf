package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"techlinter/store"
)

type credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// HashPassword validates name/password input and returns a bcrypt hash for storage.
func HashPassword(name, password string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("name is required")
	}
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

// Signup creates a new user with a hashed password and a zero token balance.
func (h *Handler) Signup(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Name = strings.TrimSpace(creds.Name)

	hash, err := HashPassword(creds.Name, creds.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.store.Create(c.Request().Context(), creds.Name, hash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			return echo.NewHTTPError(http.StatusBadRequest, "Username already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

// Login verifies credentials and returns the matching user.
// The response never carries the stored hash, only the user row.
func (h *Handler) Login(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Name = strings.TrimSpace(creds.Name)

	user, err := h.store.FindByName(c.Request().Context(), creds.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			zap.L().Warn("failed login attempt", zap.String("name", creds.Name))
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}
