package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashlab/racquet-manager/internal/apisrv/auth"
	"github.com/smashlab/racquet-manager/internal/entity"
)

type fakeSnaps struct {
	snap *entity.Snapshot
	err  error
}

func (f *fakeSnaps) Snapshot(context.Context) (*entity.Snapshot, error) {
	return f.snap, f.err
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

func testServer(t *testing.T, snaps *fakeSnaps, db *fakePinger) (*Server, *auth.Service) {
	t.Helper()
	authSvc, err := auth.New(&auth.Config{
		JWTSecret:     "secret",
		AdminUsername: "operator",
		AdminPassword: "stringbed",
	})
	require.NoError(t, err)
	return New(&Config{Port: "0"}, authSvc, snaps, db), authSvc
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"operator","password":"stringbed"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AuthToken string `json:"authToken"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.AuthToken)
	return resp.AuthToken
}

func TestHealthz(t *testing.T) {
	s, _ := testServer(t, &fakeSnaps{}, &fakePinger{})
	h := s.router()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	s2, _ := testServer(t, &fakeSnaps{}, &fakePinger{err: errors.New("down")})
	rec = httptest.NewRecorder()
	s2.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	s, _ := testServer(t, &fakeSnaps{}, &fakePinger{})
	h := s.router()

	login(t, h)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"operator","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardRequiresToken(t *testing.T) {
	s, _ := testServer(t, &fakeSnaps{snap: &entity.Snapshot{CacheMaxAge: 5}}, &fakePinger{})
	h := s.router()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardServesSnapshot(t *testing.T) {
	snap := &entity.Snapshot{
		GeneratedAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		CacheMaxAge: 5,
	}
	snap.KPI.Orders.Revenue7d = decimal.NewFromInt(30000)

	s, _ := testServer(t, &fakeSnaps{snap: snap}, &fakePinger{})
	h := s.router()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+login(t, h))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private, max-age=5", rec.Header().Get("Cache-Control"))

	var body struct {
		KPI struct {
			Orders struct {
				Revenue7d decimal.Decimal `json:"revenue7d"`
			} `json:"orders"`
		} `json:"kpi"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.KPI.Orders.Revenue7d.Equal(decimal.NewFromInt(30000)))
}

func TestDashboardBuildFailure(t *testing.T) {
	s, _ := testServer(t, &fakeSnaps{err: errors.New("boom")}, &fakePinger{})
	h := s.router()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+login(t, h))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
