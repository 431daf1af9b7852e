package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/cardflow/internal/config"
	"github.com/phrazzld/cardflow/internal/mocks"
	"github.com/phrazzld/cardflow/internal/service/auth"
	"github.com/phrazzld/cardflow/internal/state"
)

func TestRouter_RequiresTokenWhenConfigured(t *testing.T) {
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 5,
	})
	require.NoError(t, err)

	rec := &mocks.Recorder{}
	h := NewRouter(RouterDeps{
		Bus:    rec,
		State:  state.New(discardLogger()),
		Logger: discardLogger(),
		JWT:    jwtService,
	})

	body := `{"type":"CARD_FETCH_REQUEST","payload":{"cardId":"c1"}}`
	submit := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/intents", strings.NewReader(body))
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w := submit("")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization header required", decodeError(t, w).Error)

	w = submit("Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid authorization format", decodeError(t, w).Error)

	w = submit("Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeError(t, w).Error)
	assert.Empty(t, rec.Intents())

	token, err := jwtService.GenerateToken(context.Background(), "cardctl")
	require.NoError(t, err)
	w = submit("Bearer " + token)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Len(t, rec.Intents(), 1)

	// health stays public
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
