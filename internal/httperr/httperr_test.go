package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness(CodeTimeConflict))

	assert.True(t, IsBusiness(err, CodeTimeConflict))
	assert.False(t, IsBusiness(err, CodeTooSoon))
	assert.False(t, IsBusiness(errors.New("boom"), CodeTimeConflict))
}

func TestIsExclusionConflict(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}

	assert.True(t, IsExclusionConflict(fmt.Errorf("insert: %w", pgErr)))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsExclusionConflict(errors.New("other")))
}

func TestBusiness_WritesMappedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"conflict", ErrBusiness(CodeTimeConflict), http.StatusConflict, CodeTimeConflict},
		{"exclusion", &pgconn.PgError{Code: "23P01"}, http.StatusConflict, CodeTimeConflict},
		{"not found", ErrBusiness(CodeAppointmentNotFound), http.StatusNotFound, CodeAppointmentNotFound},
		{"infra", errors.New("connection refused"), http.StatusInternalServerError, "failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Business(c, tc.err, "failed", "Erro.")

			require.Equal(t, tc.status, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestBusiness_ConflictMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Business(c, ErrBusiness(CodeTimeConflict), "failed", "Erro.")

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Já existe um agendamento nesse horário.", body.Message)
}
