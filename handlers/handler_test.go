package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"techlinter/models"
	"techlinter/store"
)

// fakeStore is an in-memory UserStore for handler tests.
type fakeStore struct {
	users      []*models.User
	nextID     int64
	logs       []models.GptLog
	logErr     error
	decrements int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) add(u *models.User) *models.User {
	u.ID = f.nextID
	f.nextID++
	f.users = append(f.users, u)
	return u
}

func (f *fakeStore) Create(_ context.Context, name, passwordHash string) (*models.User, error) {
	for _, u := range f.users {
		if u.Name == name {
			return nil, store.ErrDuplicateName
		}
	}
	return f.add(&models.User{Name: name, Password: passwordHash}), nil
}

func (f *fakeStore) FindByName(_ context.Context, name string) (*models.User, error) {
	for _, u := range f.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, len(f.users))
	for i, u := range f.users {
		out[i] = *u
	}
	return out, nil
}

func (f *fakeStore) DecrementToken(_ context.Context, id int64) (*models.User, error) {
	f.decrements++
	for _, u := range f.users {
		if u.ID == id {
			if u.Token <= 0 {
				return nil, store.ErrNoTokensLeft
			}
			u.Token--
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) AppendLog(_ context.Context, userID int64, code, output string) (*models.GptLog, error) {
	if f.logErr != nil {
		return nil, f.logErr
	}
	entry := models.GptLog{ID: int64(len(f.logs) + 1), UserID: userID, Code: code, Output: output}
	f.logs = append(f.logs, entry)
	return &entry, nil
}

// fakeCompleter returns a canned reply or error and counts calls.
type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// request runs a handler against a JSON request and returns the recorder
// plus the error the handler returned.
func request(t *testing.T, h echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}
