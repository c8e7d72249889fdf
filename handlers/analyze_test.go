package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techlinter/gpt"
	"techlinter/models"
)

func TestAnalyze(t *testing.T) {
	fs := newFakeStore()
	user := fs.add(&models.User{Name: "alice", Token: 2})
	fc := &fakeCompleter{reply: "looks fine"}
	h := New(fs, fc)

	rec, err := request(t, h.Analyze, http.MethodPost, "/analyze", `{"prompt":"fn main() {}","ur_id":1}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "looks fine", body.Response)

	assert.Equal(t, int64(1), user.Token)
	require.Len(t, fs.logs, 1)
	assert.Equal(t, user.ID, fs.logs[0].UserID)
	assert.Equal(t, "fn main() {}", fs.logs[0].Code)
	assert.Equal(t, "looks fine", fs.logs[0].Output)
}

func TestAnalyze_AdminSkipsDebit(t *testing.T) {
	fs := newFakeStore()
	user := fs.add(&models.User{Name: "root", Token: 0, IsAdmin: true})
	fc := &fakeCompleter{reply: "ok"}
	h := New(fs, fc)

	for i := 0; i < 3; i++ {
		rec, err := request(t, h.Analyze, http.MethodPost, "/analyze", `{"prompt":"p","ur_id":1}`)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Zero(t, fs.decrements)
	assert.Zero(t, user.Token)
	assert.Equal(t, 3, fc.calls)
}

func TestAnalyze_NoTokensLeft(t *testing.T) {
	fs := newFakeStore()
	fs.add(&models.User{Name: "alice", Token: 0})
	fc := &fakeCompleter{reply: "never sent"}
	h := New(fs, fc)

	_, err := request(t, h.Analyze, http.MethodPost, "/analyze", `{"prompt":"p","ur_id":1}`)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.Contains(t, he.Message, "token")
	assert.Zero(t, fc.calls, "depleted user must not reach the upstream API")
}

func TestAnalyze_UnknownUser(t *testing.T) {
	h := New(newFakeStore(), &fakeCompleter{})

	_, err := request(t, h.Analyze, http.MethodPost, "/analyze", `{"prompt":"p","ur_id":42}`)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestAnalyze_MissingPrompt(t *testing.T) {
	h := New(newFakeStore(), &fakeCompleter{})

	_, err := request(t, h.Analyze, http.MethodPost, "/analyze", `{"ur_id":1}`)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestAnalyze_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unreachable", gpt.ErrUnreachable},
		{"malformed", gpt.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeStore()
			fs.add(&models.User{Name: "alice", Token: 5})
			h := New(fs, &fakeCompleter{err: tt.err})

			_, err := request(t, h.Analyze, http.MethodPost, "/analyze", `{"prompt":"p","ur_id":1}`)
			assert.Equal(t, http.StatusInternalServerError, httpCode(t, err))
			assert.Empty(t, fs.logs)
		})
	}
}

func TestAnalyze_LogFailureStillReturnsReply(t *testing.T) {
	fs := newFakeStore()
	user := fs.add(&models.User{Name: "alice", Token: 5})
	fs.logErr = errors.New("insert gpt log: disk full")
	h := New(fs, &fakeCompleter{reply: "still here"})

	rec, err := request(t, h.Analyze, http.MethodPost, "/analyze", `{"prompt":"p","ur_id":1}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "still here")
	assert.Equal(t, int64(4), user.Token, "debit stands even when the log write fails")
}
