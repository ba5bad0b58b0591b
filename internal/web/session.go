package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"workoutLists/internal/auth"
	"workoutLists/repository"
)

const storeKey = "store"

type signInForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// SignIn authenticates the credentials and sets the session cookie.
func (s *Server) SignIn(c echo.Context) error {
	var f signInForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request.")
	}
	username := strings.TrimSpace(f.Username)
	ok, err := s.Users.Authenticate(c.Request().Context(), username, f.Password)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials.")
	}
	tok, err := auth.IssueToken(s.Secret, username, s.SessionTTL)
	if err != nil {
		return err
	}
	c.SetCookie(s.sessionCookie(tok, s.SessionTTL))
	return c.JSON(http.StatusOK, echo.Map{"username": username, "token": tok, "message": "Welcome!"})
}

// SignOut clears the session cookie.
func (s *Server) SignOut(c echo.Context) error {
	c.SetCookie(s.sessionCookie("", -time.Second))
	return c.JSON(http.StatusOK, echo.Map{"message": "Signed out."})
}

func (s *Server) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		ck.MaxAge = -1
	} else {
		ck.Expires = time.Now().Add(ttl)
	}
	return ck
}

// RequireSession resolves the caller from the session cookie (or a Bearer header)
// and stores a repository scoped to them for the handlers.
func (s *Server) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := s.principal(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in.")
		}
		req := c.Request()
		c.SetRequest(req.WithContext(auth.WithPrincipal(req.Context(), p)))
		c.Set(storeKey, s.Lists(p.Name))
		return next(c)
	}
}

func (s *Server) principal(c echo.Context) (*auth.Principal, error) {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		tok, err := auth.ParseBearer(h)
		if err != nil {
			return nil, err
		}
		return auth.ParseToken(tok, s.Secret)
	}
	ck, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, err
	}
	return auth.ParseToken(ck.Value, s.Secret)
}

// store returns the repository RequireSession scoped to the caller.
func store(c echo.Context) repository.ListRepositoryI {
	return c.Get(storeKey).(repository.ListRepositoryI)
}
