package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/domain-console/internal/session"
)

const (
	sessionContextKey = "session_context"
	sessionIDKey      = "session_id"
	sessionSecureKey  = "session_secure"
	cookieValueID     = "id"
)

func cookieOptions(secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// BrowserSession identifies the user agent by a signed cookie holding a
// random id and attaches its session.Context. Anonymous contexts are not
// retained by the registry. It requires echo-contrib's session middleware to
// run first.
func BrowserSession(registry *session.Registry, cookieName string, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A cookie that fails to decode still yields a fresh session.
			sess, err := echosession.Get(cookieName, c)
			if sess == nil {
				return err
			}

			id, _ := sess.Values[cookieValueID].(string)
			if _, perr := uuid.Parse(id); perr != nil {
				id = uuid.NewString()
				sess.Values[cookieValueID] = id
				sess.Options = cookieOptions(secure)
				if err := sess.Save(c.Request(), c.Response()); err != nil {
					return err
				}
			}

			c.Set(sessionSecureKey, secure)
			c.Set(sessionIDKey, id)
			c.Set(sessionContextKey, registry.Resolve(c.Request().Context(), id))
			return next(c)
		}
	}
}

// SessionFrom returns the session.Context attached by BrowserSession.
func SessionFrom(c echo.Context) (*session.Context, bool) {
	sc, ok := c.Get(sessionContextKey).(*session.Context)
	return sc, ok && sc != nil
}

// SessionID returns the raw browser session id attached by BrowserSession.
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}

// RotateBrowserSession reissues the session cookie under id and attaches sc
// for the rest of the request. A cookie already issued by this response is
// replaced.
func RotateBrowserSession(c echo.Context, cookieName, id string, sc *session.Context) error {
	sess, err := echosession.Get(cookieName, c)
	if sess == nil {
		return err
	}
	secure, _ := c.Get(sessionSecureKey).(bool)
	sess.Values[cookieValueID] = id
	sess.Options = cookieOptions(secure)

	dropSetCookie(c.Response().Header(), cookieName)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	c.Set(sessionIDKey, id)
	c.Set(sessionContextKey, sc)
	return nil
}

func dropSetCookie(h http.Header, name string) {
	issued := h.Values(echo.HeaderSetCookie)
	kept := make([]string, 0, len(issued))
	for _, v := range issued {
		if ck, err := http.ParseSetCookie(v); err == nil && ck.Name == name {
			continue
		}
		kept = append(kept, v)
	}
	h.Del(echo.HeaderSetCookie)
	for _, v := range kept {
		h.Add(echo.HeaderSetCookie, v)
	}
}

// EndBrowserSession expires the session cookie so the next request starts a
// fresh one.
func EndBrowserSession(c echo.Context, cookieName string) error {
	sess, err := echosession.Get(cookieName, c)
	if sess == nil {
		return err
	}
	delete(sess.Values, cookieValueID)
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
	return sess.Save(c.Request(), c.Response())
}
