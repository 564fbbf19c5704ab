package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventlane/eventlane/internal/domain"
	"github.com/eventlane/eventlane/internal/service"
	"github.com/eventlane/eventlane/internal/store/drivers/sqlite"
	"github.com/eventlane/eventlane/pkg/api"
	"github.com/eventlane/eventlane/pkg/cryptox"
	"github.com/eventlane/eventlane/pkg/httpx"
	"github.com/eventlane/eventlane/pkg/jwtx"
	"github.com/eventlane/eventlane/pkg/slogx"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "eventlane-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)
	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	// Tests hammer the auth endpoints far past the production profile.
	relaxed := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	httpx.StrictLimit = relaxed
	httpx.ModerateLimit = relaxed
	httpx.LenientLimit = relaxed
	httpx.PublicLimit = relaxed

	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (*httptest.Server, *service.AuthService) {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewHS256("test-secret", "eventlane-test")
	require.NoError(t, err)

	authService := &service.AuthService{Store: st, Signer: signer}

	router := NewRouter(signer, "test", st, slogx.New(slogx.Config{Service: "eventlane", Level: "error", Format: "text"}))
	router.AuthService = authService
	router.UserService = &service.UserService{Store: st}
	router.EventService = &service.EventService{Store: st}
	router.CategoryService = &service.CategoryService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, authService
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerBody() api.RegisterRequest {
	return api.RegisterRequest{
		Name:     "Alan",
		LastName: "Turing",
		Gender:   domain.GenderMale,
		Email:    "alan@example.com",
		Username: "alan",
		Password: "enigma-machine",
	}
}

func registerUser(t *testing.T, srv *httptest.Server) api.AuthResponse {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[api.AuthResponse](t, resp)
}

func TestRegisterEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Decode into a raw map so hidden fields would be caught.
	raw := decodeBody[map[string]any](t, resp)
	require.NotEmpty(t, raw["token"])
	user, ok := raw["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "alan@example.com", user["email"])
	require.NotContains(t, user, "passwordHash")
	require.NotContains(t, user, "password_hash")
	require.NotContains(t, user, "failedAttempts")
	require.NotContains(t, user, "isLocked")
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	body := registerBody()
	body.Email = "bogus"
	body.Username = "xy"
	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeBody[api.ErrorResponse](t, resp)
	require.Len(t, envelope.Errors, 2)
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", registerBody())
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	envelope := decodeBody[api.ErrorResponse](t, resp)
	require.Contains(t, envelope.Message, "email")
}

func TestLoginEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", api.LoginRequest{
		Email:    "alan@example.com",
		Password: "enigma-machine",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	auth := decodeBody[api.AuthResponse](t, resp)
	require.NotEmpty(t, auth.Token)
	require.Equal(t, "alan", auth.User.Username)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", api.LoginRequest{
		Email:    "alan@example.com",
		Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginEndpoint_MissingFields(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", api.LoginRequest{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginEndpoint_LockoutFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv)

	for i := 0; i < domain.MaxFailedLogins; i++ {
		resp := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", api.LoginRequest{
			Email:    "alan@example.com",
			Password: "wrong",
		})
		// The failure that reaches the threshold already reports the lock.
		want := http.StatusUnauthorized
		if i == domain.MaxFailedLogins-1 {
			want = http.StatusForbidden
		}
		require.Equal(t, want, resp.StatusCode)
		resp.Body.Close()
	}

	// The sixth attempt is refused outright, correct password or not.
	resp := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", api.LoginRequest{
		Email:    "alan@example.com",
		Password: "enigma-machine",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	envelope := decodeBody[api.ErrorResponse](t, resp)
	require.Contains(t, envelope.Message, "locked")
}

func TestUsersMe(t *testing.T) {
	srv, _ := newTestServer(t)
	auth := registerUser(t, srv)

	resp := doJSON(t, http.MethodGet, srv.URL+"/users/me", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[api.UserResponse](t, resp)
	require.Equal(t, auth.User.ID, me.ID)
}

func TestUsersMe_RequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/users/me", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestUsersUpdate_OtherAccountForbidden(t *testing.T) {
	srv, _ := newTestServer(t)
	auth := registerUser(t, srv)

	name := "Nope"
	resp := doJSON(t, http.MethodPut, srv.URL+"/users/someone-else", auth.Token, api.UpdateUserRequest{Name: &name})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestUsersUpdate_OwnAccount(t *testing.T) {
	srv, _ := newTestServer(t)
	auth := registerUser(t, srv)

	name := "Alun"
	resp := doJSON(t, http.MethodPut, srv.URL+"/users/"+auth.User.ID, auth.Token, api.UpdateUserRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[api.UserResponse](t, resp)
	require.Equal(t, "Alun", updated.Name)
}

func TestUsersList(t *testing.T) {
	srv, _ := newTestServer(t)
	auth := registerUser(t, srv)

	resp := doJSON(t, http.MethodGet, srv.URL+"/users", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decodeBody[[]api.UserResponse](t, resp)
	require.Len(t, users, 1)
}

func TestEventsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	auth := registerUser(t, srv)

	eventReq := api.EventRequest{
		Title:       "Bletchley Reunion",
		Description: "Bring your own rotors.",
		Date:        time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second),
		Category:    "other",
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/events", auth.Token, eventReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[api.EventResponse](t, resp)
	require.Equal(t, auth.User.ID, created.Creator.ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/events/"+created.ID, auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[api.EventResponse](t, resp)
	require.Equal(t, "Bletchley Reunion", got.Title)

	resp = doJSON(t, http.MethodGet, srv.URL+"/events?category=other", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	events := decodeBody[[]api.EventResponse](t, resp)
	require.Len(t, events, 1)

	resp = doJSON(t, http.MethodGet, srv.URL+"/events?category=concert", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	events = decodeBody[[]api.EventResponse](t, resp)
	require.Empty(t, events)

	eventReq.Title = "Bletchley Reunion II"
	resp = doJSON(t, http.MethodPut, srv.URL+"/events/"+created.ID, auth.Token, eventReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[api.EventResponse](t, resp)
	require.Equal(t, "Bletchley Reunion II", updated.Title)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/events/"+created.ID, auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/events/"+created.ID, auth.Token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestEventsRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/events", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestPublicEvents_NoToken(t *testing.T) {
	srv, _ := newTestServer(t)
	auth := registerUser(t, srv)

	eventReq := api.EventRequest{
		Title:    "Open Day",
		Date:     time.Now().UTC().Add(24 * time.Hour),
		Category: "exhibition",
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/events", auth.Token, eventReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/public/events", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	events := decodeBody[[]api.EventResponse](t, resp)
	require.Len(t, events, 1)
}

func TestCategoriesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/categories", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cats := decodeBody[[]api.CategoryResponse](t, resp)
	require.Len(t, cats, 6)
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health := decodeBody[api.HealthResponse](t, resp)
	require.Equal(t, "ok", health.Status)

	resp = doJSON(t, http.MethodGet, srv.URL+"/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ready := decodeBody[api.HealthResponse](t, resp)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
}

func TestExpiredToken(t *testing.T) {
	srv, authService := newTestServer(t)

	// Mint a token that was already stale an hour ago.
	signer := authService.Signer.(*jwtx.HS256)
	claims := jwtx.NewAccessClaims("someone", "someone", "eventlane-test",
		jwtx.DefaultAccessTokenTTL, time.Now().Add(-2*time.Hour))
	stale, err := signer.Sign(claims)
	require.NoError(t, err)

	resp := doJSON(t, http.MethodGet, srv.URL+"/users/me", stale, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	envelope := decodeBody[api.ErrorResponse](t, resp)
	require.Contains(t, envelope.Message, "expired")
}
