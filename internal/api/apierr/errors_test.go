package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battlebots/internal/model"
)

func TestWriteErrorMapsModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid job", fmt.Errorf("%w: bad bot id", model.ErrInvalidJob), http.StatusBadRequest, CodeInvalidJob},
		{"result not found", model.ErrResultNotFound, http.StatusNotFound, CodeResultNotFound},
		{"invalid request", NewInvalidRequestError("limit must be an integer"), http.StatusBadRequest, CodeInvalidRequest},
		{"unknown", errors.New("redis down"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestInternalErrorsDoNotLeakDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("dial tcp 10.0.0.1:6379: connection refused"))
	assert.NotContains(t, rr.Body.String(), "10.0.0.1")
}
