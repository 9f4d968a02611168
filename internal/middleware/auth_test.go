package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"campusbites_back_end/internal/auth"
	"campusbites_back_end/internal/middleware"
	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/profile"
)

type stubVerifier struct {
	identity auth.Identity
	err      error
}

func (s *stubVerifier) Verify(_ string) (auth.Identity, error) { return s.identity, s.err }

type stubLoader struct {
	profile models.Profile
	err     error
}

func (s *stubLoader) Load(_ context.Context, _ string) (models.Profile, error) {
	return s.profile, s.err
}

func serve(v *stubVerifier, l *stubLoader) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.Authenticated(v, l), func(c *gin.Context) {
		p, _ := middleware.ProfileFrom(c)
		c.JSON(http.StatusOK, gin.H{"uid": p.UID})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	return w
}

func TestAuthenticated_Passthrough(t *testing.T) {
	v := &stubVerifier{identity: auth.Identity{UID: "uid-1", Email: "e@campus.edu"}}
	l := &stubLoader{profile: models.Profile{UID: "uid-1", Role: models.RoleUser, CampusID: "C1"}}

	w := serve(v, l)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "uid-1")
}

func TestAuthenticated_MissingToken(t *testing.T) {
	w := serve(&stubVerifier{err: auth.ErrMissingToken}, &stubLoader{})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "UNAUTHENTICATED")
}

func TestAuthenticated_InvalidToken(t *testing.T) {
	w := serve(&stubVerifier{err: auth.ErrInvalidToken}, &stubLoader{})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_CREDENTIAL")
}

func TestAuthenticated_UnknownProfileIsForbiddenNotNotFound(t *testing.T) {
	// Jamais de 404 ici : un 404 confirmerait l'existence (ou non) d'un compte
	v := &stubVerifier{identity: auth.Identity{UID: "uid-inconnu"}}

	for _, loadErr := range []error{profile.ErrProfileNotFound, profile.ErrRoleNotRecognized} {
		w := serve(v, &stubLoader{err: loadErr})
		require.Equal(t, http.StatusForbidden, w.Code, loadErr)
		require.Contains(t, w.Body.String(), "FORBIDDEN")
	}
}

func TestAuthenticated_LoaderFailure(t *testing.T) {
	v := &stubVerifier{identity: auth.Identity{UID: "uid-1"}}
	w := serve(v, &stubLoader{err: errors.New("mongo down")})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
