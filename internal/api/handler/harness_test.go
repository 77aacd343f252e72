package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/api/middleware"
	"github.com/99minutos/domain-console/internal/infrastructure/tokenstore"
	"github.com/99minutos/domain-console/internal/session"
)

const testCookie = "console_session"

// fakeAPI is an in-memory backend for the profile and event domains.
type fakeAPI struct {
	mu        sync.Mutex
	srv       *httptest.Server
	revoked   bool
	lastBody  map[string]any
	lastQuery string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/dev-login", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Subject string   `json:"subject"`
			Roles   []string `json:"roles"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok",
			"token_type":   "bearer",
			"expires_at":   time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
			"subject":      in.Subject,
			"roles":        in.Roles,
		})
	})
	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		if f.reject(w) {
			return
		}
		_, _ = w.Write([]byte(`{"versions":[{"collection_name":"Profile","current_version":"Profile.0.1.0.1"}],
			"enumerators":[{"version":1,"enumerators":[{"name":"status","values":[
				{"value":"active","description":"Active"},{"value":"archived","description":"Archived"}]}]}]}`))
	})
	mux.HandleFunc("/api/profile", func(w http.ResponseWriter, r *http.Request) {
		if f.reject(w) {
			return
		}
		switch r.Method {
		case http.MethodGet:
			f.mu.Lock()
			f.lastQuery = r.URL.RawQuery
			f.mu.Unlock()
			_, _ = w.Write([]byte(`{"items":[{"_id":"p1","name":"acme"}],"limit":20,"has_more":false,"next_cursor":null}`))
		case http.MethodPost:
			f.record(r)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"_id":"p2"}`))
		}
	})
	mux.HandleFunc("/api/profile/p1", func(w http.ResponseWriter, r *http.Request) {
		if f.reject(w) {
			return
		}
		if r.Method == http.MethodPatch {
			f.record(r)
		}
		_, _ = w.Write([]byte(`{"_id":"p1","name":"acme","status":"active"}`))
	})
	mux.HandleFunc("/api/profile/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"profile not found"}`))
	})
	mux.HandleFunc("/api/event/e1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"e1","name":"deploy"}`))
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) reject(w http.ResponseWriter) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.revoked {
		w.WriteHeader(http.StatusUnauthorized)
		return true
	}
	return false
}

func (f *fakeAPI) record(r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastBody = map[string]any{}
	_ = json.Unmarshal(raw, &f.lastBody)
}

func (f *fakeAPI) last() (query string, body map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery, f.lastBody
}

func (f *fakeAPI) revoke() {
	f.mu.Lock()
	f.revoked = true
	f.mu.Unlock()
}

// harness runs handlers behind the browser session middleware stack.
type harness struct {
	api      *fakeAPI
	registry *session.Registry
	store    sessions.Store
	echo     *echo.Echo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := newFakeAPI(t)
	e := echo.New()
	e.Validator = NewValidator()
	return &harness{
		api: api,
		registry: session.NewRegistry(tokenstore.NewMemory(tokenstore.Config{}), session.Settings{
			BaseURL:      api.srv.URL,
			DefaultRoute: "/profiles",
			Navigator:    middleware.Navigator{},
		}, 0, zerolog.Nop()),
		store: sessions.NewCookieStore([]byte("test-secret")),
		echo:  e,
	}
}

// call runs h for req. params are path parameter name/value pairs.
func (h *harness) call(next echo.HandlerFunc, req *http.Request, cookies []*http.Cookie, params ...string) (*httptest.ResponseRecorder, error) {
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := h.echo.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	chain := middleware.RequestContext()(
		echosession.Middleware(h.store)(
			middleware.BrowserSession(h.registry, testCookie, false)(next)))
	err := chain(c)
	return rec, err
}

// login returns the cookies of a browser session logged in with roles.
func (h *harness) login(t *testing.T, roles ...string) []*http.Cookie {
	t.Helper()
	rec, err := h.call(func(c echo.Context) error {
		sc, _ := middleware.SessionFrom(c)
		_, err := sc.Auth.Login(c.Request().Context(), "alice", roles)
		return err
	}, httptest.NewRequest(http.MethodPost, "/seed", nil), nil)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return rec.Result().Cookies()
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
