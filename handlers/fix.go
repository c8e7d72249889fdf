package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Issue is a lint-style finding with a 1-based line/column span.
type Issue struct {
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	EndLine   int    `json:"end_line"`
	Column    int    `json:"column"`
	EndColumn int    `json:"end_column"`
}

type fixResponse struct {
	Response []Issue `json:"response"`
}

// Fix returns a fixed mock list of issues. Stateless contract stub.
func (h *Handler) Fix(c echo.Context) error {
	issues := []Issue{
		{
			Severity:  "Warning",
			Message:   "テストです",
			Line:      1,
			EndLine:   2,
			Column:    1,
			EndColumn: 10,
		},
	}

	return c.JSON(http.StatusOK, fixResponse{Response: issues})
}
