package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"techlinter/gpt"
	"techlinter/store"
)

type analyzeRequest struct {
	Prompt string `json:"prompt"`
	UserID int64  `json:"ur_id"`
}

type analyzeResponse struct {
	Response string `json:"response"`
}

// Analyze debits one token from the user (admins exempt), forwards the
// prompt to the completion API and returns the reply text. The log write is
// best-effort: once the reply is obtained the debit is not rolled back.
func (h *Handler) Analyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}

	ctx := c.Request().Context()

	user, err := h.store.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !user.IsAdmin {
		if _, err := h.store.DecrementToken(ctx, user.ID); err != nil {
			if errors.Is(err, store.ErrNoTokensLeft) {
				return echo.NewHTTPError(http.StatusInternalServerError,
					fmt.Sprintf("Error updating user token: %v", err))
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	reply, err := h.gpt.Complete(ctx, req.Prompt)
	if err != nil {
		if errors.Is(err, gpt.ErrUnreachable) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to contact API")
		}
		if errors.Is(err, gpt.ErrMalformed) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to parse response")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.store.AppendLog(ctx, user.ID, req.Prompt, reply); err != nil {
		zap.L().Error("gpt log write failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	return c.JSON(http.StatusOK, analyzeResponse{Response: reply})
}
