package common_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ambassador_portal/internal/common"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", common.ErrNotFound, http.StatusNotFound},
		{"unauthorized", common.ErrUnauthorized, http.StatusUnauthorized},
		{"bad request", common.ErrBadRequest, http.StatusBadRequest},
		{"validation", common.ErrValidation, http.StatusUnprocessableEntity},
		{"conflict", common.ErrConflict, http.StatusConflict},
		{"upstream", common.ErrUpstream, http.StatusBadGateway},
		{"code generation exhausted", common.ErrCodeGenExhausted, http.StatusServiceUnavailable},
		{"wrapped sentinel", fmt.Errorf("context: %w", common.ErrNotFound), http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, common.HTTPStatusFromError(tt.err))
		})
	}
}
