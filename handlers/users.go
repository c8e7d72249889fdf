package handlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"techlinter/store"
)

//go:embed templates/*.html
var templateFiles embed.FS

var userTemplate = template.Must(template.ParseFS(templateFiles, "templates/user.html"))

// Hello greets the first registered user.
func (h *Handler) Hello(c echo.Context) error {
	users, err := h.store.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
	}
	if len(users) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No users found.")
	}

	return c.String(http.StatusOK, fmt.Sprintf("\n    <div>Title</div>\n    Hello, %s\n    ", users[0].Name))
}

// UserPage renders the profile page for the named user.
func (h *Handler) UserPage(c echo.Context) error {
	name := c.Param("name")

	user, err := h.store.FindByName(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var page bytes.Buffer
	if err := userTemplate.Execute(&page, map[string]string{"user": user.Name}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.HTML(http.StatusOK, page.String())
}
