package handlers

import (
	"context"

	"techlinter/models"
)

// UserStore is the subset of the store used by the route handlers.
// It is an interface so tests can substitute a fake.
type UserStore interface {
	Create(ctx context.Context, name, passwordHash string) (*models.User, error)
	FindByName(ctx context.Context, name string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	DecrementToken(ctx context.Context, id int64) (*models.User, error)
	AppendLog(ctx context.Context, userID int64, code, output string) (*models.GptLog, error)
}

// Completer sends a prompt to the completion API and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store UserStore
	gpt   Completer
}

// New creates a Handler with the given store and completion client.
func New(store UserStore, gpt Completer) *Handler {
	return &Handler{store: store, gpt: gpt}
}
