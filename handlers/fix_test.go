package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFix(t *testing.T) {
	h := New(newFakeStore(), &fakeCompleter{})

	want := Issue{
		Severity:  "Warning",
		Message:   "テストです",
		Line:      1,
		EndLine:   2,
		Column:    1,
		EndColumn: 10,
	}

	// Stateless: identical payload on every call.
	for i := 0; i < 2; i++ {
		rec, err := request(t, h.Fix, http.MethodPost, "/fix", "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Response []Issue `json:"response"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Response, 1)
		assert.Equal(t, want, body.Response[0])
	}
}
