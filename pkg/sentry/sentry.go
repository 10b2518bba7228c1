package sentry

import (
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long process shutdown waits for buffered events.
const FlushTime = 2 * time.Second

// Sentry is a small builder around the Sentry SDK. Capture goes through the
// request-scoped hub when an Echo context is attached.
type Sentry struct {
	context echo.Context
	error   error
	message string
	level   sentrygo.Level
	extras  map[string]interface{}
}

func WithContext(c echo.Context) *Sentry {
	return new(Sentry).WithContext(c)
}

func (s *Sentry) WithContext(c echo.Context) *Sentry {
	s.context = c
	return s
}

func (s *Sentry) WithError(err error) *Sentry {
	s.error = err
	return s
}

func (s *Sentry) WithMessage(message string) *Sentry {
	s.message = message
	return s
}

func (s *Sentry) WithLevel(level sentrygo.Level) *Sentry {
	s.level = level
	return s
}

func (s *Sentry) WithExtras(extras map[string]interface{}) *Sentry {
	s.extras = extras
	return s
}

// Error captures err at error level.
func (s *Sentry) Error(err error) {
	s.error = err
	if s.level == "" {
		s.level = sentrygo.LevelError
	}
	s.capture()
}

// Message captures msg at the configured level (info by default).
func (s *Sentry) Message(msg string) {
	s.message = msg
	if s.level == "" {
		s.level = sentrygo.LevelInfo
	}
	s.capture()
}

func (s *Sentry) capture() {
	hub := s.hub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		scope.SetLevel(s.level)
		for key, value := range s.extras {
			scope.SetExtra(key, value)
		}
		if s.error != nil {
			hub.CaptureException(s.error)
			return
		}
		hub.CaptureMessage(s.message)
	})
}

func (s *Sentry) hub() *sentrygo.Hub {
	if s.context != nil {
		if hub := sentryecho.GetHubFromContext(s.context); hub != nil {
			return hub
		}
	}
	return sentrygo.CurrentHub()
}
