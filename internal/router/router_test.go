package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Abhinav-2002/Salaried/internal/config"
	"github.com/Abhinav-2002/Salaried/internal/handler"
	"github.com/Abhinav-2002/Salaried/internal/model"
	"github.com/Abhinav-2002/Salaried/internal/repository"
	"github.com/Abhinav-2002/Salaried/internal/server"
	"github.com/Abhinav-2002/Salaried/internal/service"
	"github.com/Abhinav-2002/Salaried/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	checkErr  error
	insertErr error
	pingErr   error
	panicMsg  string
	inserted  []*model.Signup
}

func (f *fakeStore) Insert(_ context.Context, signup *model.Signup) error {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, signup)
	return f.insertErr
}

func (f *fakeStore) Check() error               { return f.checkErr }
func (f *fakeStore) Ping(context.Context) error { return f.pingErr }
func (f *fakeStore) Backend() string            { return "fake" }

func (f *fakeStore) last(t *testing.T) *model.Signup {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.inserted)
	return f.inserted[len(f.inserted)-1]
}

func testConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
			BodyLimit:          "1K",
		},
		Store:         config.StoreConfig{Backend: config.BackendSupabase, Table: "waitlist"},
		Observability: config.DefaultObservabilityConfig(),
	}
}

func newTestRouter(t *testing.T, store repository.WaitlistStore) *echo.Echo {
	t.Helper()

	cfg := testConfig()
	log := zerolog.Nop()
	srv := &server.Server{
		Config: cfg,
		Logger: &log,
	}

	services, err := service.NewService(srv, &repository.Repositories{Waitlist: store})
	require.NoError(t, err)

	return NewRouter(srv, handler.NewHandlers(srv, services), services)
}

type response struct {
	status int
	header http.Header
	body   map[string]any
}

func do(t *testing.T, r http.Handler, method, target, body string, headers map[string]string) response {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := response{status: rec.Code, header: rec.Header()}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res.body), rec.Body.String())
	}
	return res
}

func post(t *testing.T, r http.Handler, body string) response {
	t.Helper()
	return do(t, r, http.MethodPost, "/api/waitlist", body, nil)
}

const validBody = `{"name":"Ada","email":"ada@example.com","gender":"f"}`

func TestWaitlist_MethodNotAllowed(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(t, store)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions} {
		t.Run(method, func(t *testing.T) {
			res := do(t, r, method, "/api/waitlist", validBody, nil)
			require.Equal(t, http.StatusMethodNotAllowed, res.status)
			require.Equal(t, "POST", res.header.Get(echo.HeaderAllow))
			require.Equal(t, map[string]any{"error": "Method not allowed"}, res.body)
		})
	}

	t.Run("HEAD", func(t *testing.T) {
		res := do(t, r, http.MethodHead, "/api/waitlist", "", nil)
		require.Equal(t, http.StatusMethodNotAllowed, res.status)
		require.Equal(t, "POST", res.header.Get(echo.HeaderAllow))
	})

	require.Empty(t, store.inserted)
}

func TestWaitlist_CORSPreflight(t *testing.T) {
	r := newTestRouter(t, &fakeStore{})

	res := do(t, r, http.MethodOptions, "/api/waitlist", "", map[string]string{
		echo.HeaderOrigin:                     "https://example.com",
		echo.HeaderAccessControlRequestMethod: http.MethodPost,
	})
	require.Equal(t, http.StatusNoContent, res.status)
	require.NotEmpty(t, res.header.Get(echo.HeaderAccessControlAllowMethods))
}

func TestWaitlist_InvalidJSON(t *testing.T) {
	r := newTestRouter(t, &fakeStore{})

	for _, body := range []string{`{"name":`, ``, `not json`, `{"name":{"first":"Ada"},"email":"a@b.co","gender":"f"}`} {
		res := post(t, r, body)
		require.Equal(t, http.StatusBadRequest, res.status, body)
		require.Equal(t, map[string]any{"error": "Invalid JSON"}, res.body, body)
	}
}

func TestWaitlist_MissingRequiredFields(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(t, store)

	bodies := []string{
		`{"email":"ada@example.com","gender":"f"}`,
		`{"name":"Ada","gender":"f"}`,
		`{"name":"Ada","email":"ada@example.com"}`,
		`{"name":"   ","email":"ada@example.com","gender":"f"}`,
		`{"name":"Ada","email":"  ","gender":"f"}`,
		`{"name":"Ada","email":"bad","gender":null}`,
		`{}`,
		`null`,
		`[]`,
	}

	for _, body := range bodies {
		res := post(t, r, body)
		require.Equal(t, http.StatusBadRequest, res.status, body)
		require.Equal(t, map[string]any{"error": "Missing required fields"}, res.body, body)
	}
	require.Empty(t, store.inserted)
}

func TestWaitlist_InvalidEmail(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(t, store)

	for _, email := range []string{"ada", "ada@example", "ada.example.com", "ada @example.com", "ada\u00a0x@example.com", "ada@exa\u2028mple.com"} {
		res := post(t, r, `{"name":"Ada","email":"`+email+`","gender":"f"}`)
		require.Equal(t, http.StatusBadRequest, res.status, email)
		require.Equal(t, map[string]any{"error": "Invalid email address"}, res.body, email)
	}
	require.Empty(t, store.inserted)
}

func TestWaitlist_NormalizesAndStores(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(t, store)

	res := do(t, r, http.MethodPost, "/api/waitlist",
		`{"name":"Ada","email":"ADA@Example.com ","gender":"f"}`,
		map[string]string{
			echo.HeaderXForwardedFor: " 1.2.3.4 , 5.6.7.8",
			"User-Agent":             "Mozilla/5.0 (test)",
		})

	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, map[string]any{"ok": true}, res.body)

	stored := store.last(t)
	require.Equal(t, "ada@example.com", stored.Email)
	require.Equal(t, "Ada", stored.Name)
	require.Equal(t, "f", stored.Gender)
	require.Nil(t, stored.SalaryMin)
	require.Nil(t, stored.City)
	require.NotNil(t, stored.IP)
	require.Equal(t, "1.2.3.4", *stored.IP)
	require.NotNil(t, stored.UserAgent)
	require.Equal(t, "Mozilla/5.0 (test)", *stored.UserAgent)
}

func TestWaitlist_MetadataAbsent(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(t, store)

	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(validBody))
	req.Header.Del("User-Agent")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	stored := store.last(t)
	require.Nil(t, stored.IP)
	require.Nil(t, stored.UserAgent)
}

func TestWaitlist_OptionalFields(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(t, store)

	res := post(t, r, `{"name":"Ada","email":"ada@example.com","gender":"f","salaryMin":55000,"city":"  Pune "}`)
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "55000", *store.last(t).SalaryMin)
	require.Equal(t, "Pune", *store.last(t).City)

	res = post(t, r, `{"name":"Ada","email":"ada@example.com","gender":"f","salaryMin":0,"city":""}`)
	require.Equal(t, http.StatusOK, res.status)
	require.Nil(t, store.last(t).SalaryMin)
	require.Nil(t, store.last(t).City)

	res = post(t, r, `{"name":"Ada","email":"ada@example.com","gender":"f","salaryMin":"   ","city":" "}`)
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "", *store.last(t).SalaryMin)
	require.Equal(t, "", *store.last(t).City)
}

func TestWaitlist_DoubleEncodedBody(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(t, store)

	encoded, err := json.Marshal(validBody)
	require.NoError(t, err)

	res := post(t, r, string(encoded))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "ada@example.com", store.last(t).Email)
}

func TestWaitlist_StoreOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "duplicate message",
			err:     sqlerr.ConvertRESTError("waitlist", "", `duplicate key value violates unique constraint "waitlist_email_key"`, ""),
			status:  http.StatusConflict,
			message: "This email is already on the waitlist.",
		},
		{
			name:    "typed rest code",
			err:     sqlerr.ConvertRESTError("waitlist", "23505", "conflict", ""),
			status:  http.StatusConflict,
			message: "This email is already on the waitlist.",
		},
		{
			name:    "typed pg code",
			err:     &pgconn.PgError{Code: "23505", TableName: "waitlist"},
			status:  http.StatusConflict,
			message: "This email is already on the waitlist.",
		},
		{
			name:    "permission denied",
			err:     sqlerr.ConvertRESTError("waitlist", "42501", "permission denied for table waitlist", ""),
			status:  http.StatusInternalServerError,
			message: "Failed to save signup",
		},
		{
			name:    "network failure",
			err:     errors.New("dial tcp: connection already closed"),
			status:  http.StatusInternalServerError,
			message: "Failed to save signup",
		},
		{
			name:    "credentials vanished",
			err:     config.ErrMissingStoreCredentials,
			status:  http.StatusInternalServerError,
			message: "Server misconfigured",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newTestRouter(t, &fakeStore{insertErr: c.err})

			res := post(t, r, validBody)
			require.Equal(t, c.status, res.status)
			require.Equal(t, map[string]any{"error": c.message}, res.body)
		})
	}
}

func TestWaitlist_MissingCredentials(t *testing.T) {
	store := repository.NewSupabaseStore(config.SupabaseConfig{}, "waitlist", nil)
	r := newTestRouter(t, store)

	for _, body := range []string{validBody, `{"name":`, `{}`, `{"name":"Ada","email":"nope","gender":"f"}`} {
		res := post(t, r, body)
		require.Equal(t, http.StatusInternalServerError, res.status, body)
		require.Equal(t, map[string]any{"error": "Server misconfigured"}, res.body, body)
	}

	// The method check still comes first.
	res := do(t, r, http.MethodGet, "/api/waitlist", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, res.status)
}

func TestWaitlist_PanicIsServerMisconfigured(t *testing.T) {
	r := newTestRouter(t, &fakeStore{panicMsg: "boom"})

	res := post(t, r, validBody)
	require.Equal(t, http.StatusInternalServerError, res.status)
	require.Equal(t, map[string]any{"error": "Server misconfigured"}, res.body)
}

func TestWaitlist_BodyTooLarge(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(t, store)

	big := `{"name":"` + strings.Repeat("a", 4096) + `","email":"ada@example.com","gender":"f"}`
	res := post(t, r, big)
	require.Equal(t, http.StatusRequestEntityTooLarge, res.status)
	require.Contains(t, res.body, "error")
	require.Empty(t, store.inserted)
}

func TestWaitlist_SupabaseEndToEnd(t *testing.T) {
	var calls int
	var mu sync.Mutex

	supabase := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint \"waitlist_email_key\"","details":null,"hint":null}`))
	}))
	t.Cleanup(supabase.Close)

	store := repository.NewSupabaseStore(
		config.SupabaseConfig{URL: supabase.URL, ServiceRoleKey: "key"},
		"waitlist",
		supabase.Client(),
	)
	r := newTestRouter(t, store)

	first := post(t, r, validBody)
	require.Equal(t, http.StatusOK, first.status)

	second := post(t, r, validBody)
	require.Equal(t, http.StatusConflict, second.status)
	require.Equal(t, map[string]any{"error": "This email is already on the waitlist."}, second.body)
}

func TestStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r := newTestRouter(t, &fakeStore{})

		res := do(t, r, http.MethodGet, "/status", "", nil)
		require.Equal(t, http.StatusOK, res.status)
		require.Equal(t, "healthy", res.body["status"])

		checks := res.body["checks"].(map[string]any)
		require.Equal(t, "healthy", checks["store"].(map[string]any)["status"])
	})

	t.Run("missing credentials", func(t *testing.T) {
		r := newTestRouter(t, repository.NewSupabaseStore(config.SupabaseConfig{}, "waitlist", nil))

		res := do(t, r, http.MethodGet, "/status", "", nil)
		require.Equal(t, http.StatusServiceUnavailable, res.status)
		require.Equal(t, "unhealthy", res.body["status"])

		store := res.body["checks"].(map[string]any)["store"].(map[string]any)
		require.Equal(t, "supabase", store["backend"])
	})

	t.Run("unreachable", func(t *testing.T) {
		r := newTestRouter(t, &fakeStore{pingErr: errors.New("timeout")})

		res := do(t, r, http.MethodGet, "/status", "", nil)
		require.Equal(t, http.StatusServiceUnavailable, res.status)
	})
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, &fakeStore{})

	res := do(t, r, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, res.status)
	require.Equal(t, map[string]any{"error": "Route not found"}, res.body)
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t, &fakeStore{})

	upstream := "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	res := do(t, r, http.MethodPost, "/api/waitlist", validBody, map[string]string{"X-Request-ID": upstream})
	require.Equal(t, upstream, res.header.Get("X-Request-ID"))

	res = do(t, r, http.MethodPost, "/api/waitlist", validBody, map[string]string{"X-Request-ID": "<script>"})
	require.NotEqual(t, "<script>", res.header.Get("X-Request-ID"))
	require.Len(t, res.header.Get("X-Request-ID"), 36)
}
