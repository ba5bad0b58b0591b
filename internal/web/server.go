package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"workoutLists/internal/config"
	"workoutLists/repository"
)

// SessionCookie holds the signed session token.
const SessionCookie = "workouts-session"

// Server carries the HTTP layer's dependencies.
type Server struct {
	Users        repository.UserRepositoryI
	Lists        repository.ListScope
	Secret       string
	SessionTTL   time.Duration
	SecureCookie bool
}

// New builds the echo instance with middleware and routes registered.
func New(cfg *config.Config, users repository.UserRepositoryI, lists repository.ListScope) *echo.Echo {
	if cfg == nil {
		panic("config is required")
	}
	s := &Server{
		Users:        users,
		Lists:        lists,
		Secret:       cfg.Auth.JWTSecret,
		SessionTTL:   cfg.Auth.SessionTTL,
		SecureCookie: cfg.HTTP.SecureCookie,
	}
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	s.Route(e)
	return e
}

// Route registers all available routes.
func (s *Server) Route(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/lists") })

	// Public routes
	e.POST("/users/signin", s.SignIn)
	e.POST("/users/signout", s.SignOut)

	lists := e.Group("/lists", s.RequireSession)
	lists.GET("", s.AllLists)
	lists.POST("", s.CreateList)
	lists.GET("/:listId", s.GetList)
	lists.POST("/:listId/edit", s.RenameList)
	lists.POST("/:listId/destroy", s.DeleteList)
	lists.POST("/:listId/complete_all", s.CompleteAll)
	lists.POST("/:listId/entries", s.CreateEntry)
	lists.GET("/:listId/entries/:entryId", s.GetEntry)
	lists.POST("/:listId/entries/:entryId/toggle", s.ToggleEntry)
	lists.POST("/:listId/entries/:entryId/destroy", s.DeleteEntry)
}

// Start serves HTTP on the configured address and returns a shutdown function.
func Start(cfg *config.Config, users repository.UserRepositoryI, lists repository.ListScope) func(context.Context) error {
	e := New(cfg, users, lists)
	addr := cfg.HTTP.Address
	if addr == "" {
		addr = ":3000"
	}
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server: %v", err)
		}
	}()
	return e.Shutdown
}

// errorHandler renders every error as {"error": message}. Anything that is not
// an *echo.HTTPError is an unexpected failure: it is logged and reported generically.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Something went wrong."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		log.Printf("http %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"error": msg})
	}
	if err != nil {
		log.Printf("http write error response: %v", err)
	}
}
