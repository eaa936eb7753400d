package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tanks/1", nil)
	return c, w
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestIsBusiness_MatchesWrappedCode(t *testing.T) {
	err := fmt.Errorf("loading tank: %w", ErrNotFound("tank_not_found", "Tank not found"))

	assert.True(t, IsBusiness(err, "tank_not_found"))
	assert.False(t, IsBusiness(err, "other"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}

func TestError_FallsBackToCode(t *testing.T) {
	assert.Equal(t, "invalid_state", ErrBusiness("invalid_state").Error())
	assert.Equal(t, "Tank not found", ErrNotFound("tank_not_found", "Tank not found").Error())
}

func TestRespond_MapsKinds(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrValidation("invalid_request", "bad"), http.StatusBadRequest},
		{ErrNotFound("tank_not_found", "missing"), http.StatusNotFound},
		{ErrUnauthorized("not_owner", "nope"), http.StatusForbidden},
		{ErrConflict("email_taken", "taken"), http.StatusConflict},
		{ErrExpired("code_expired", "late"), http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		c, w := newContext()
		Respond(c, quietLogger(), tc.err)
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}

func TestRespond_WritesCodeAndMessage(t *testing.T) {
	c, w := newContext()
	Respond(c, quietLogger(), ErrConflict("already_verified", "Account is already verified"))

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "already_verified", body.Code)
	assert.Equal(t, "Account is already verified", body.Message)
}

func TestRespondBadRequest_FlattensBusinessErrors(t *testing.T) {
	c, w := newContext()
	RespondBadRequest(c, quietLogger(), ErrNotFound("user_not_found", "User not found"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newContext()
	RespondBadRequest(c, quietLogger(), errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
