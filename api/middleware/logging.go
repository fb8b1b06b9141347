package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const navCallIdHeader = "Nav-Call-Id"

type config struct {
	logger     *slog.Logger
	ignorePath map[string]struct{}

	defaultLevel     slog.Level
	clientErrorLevel slog.Level
	serverErrorLevel slog.Level
}

type LoggerOption func(*config)

// WithIgnorePath skips the logging of the given paths, typically the probes.
func WithIgnorePath(paths []string) LoggerOption {
	return func(c *config) {
		for _, path := range paths {
			c.ignorePath[path] = struct{}{}
		}
	}
}

func (l *config) levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return l.serverErrorLevel
	case status >= http.StatusBadRequest:
		return l.clientErrorLevel
	default:
		return l.defaultLevel
	}
}

func NewLogging(logger *slog.Logger, options ...LoggerOption) gin.HandlerFunc {
	l := &config{
		logger:           logger,
		ignorePath:       make(map[string]struct{}),
		defaultLevel:     slog.LevelInfo,
		clientErrorLevel: slog.LevelWarn,
		serverErrorLevel: slog.LevelError,
	}

	for _, option := range options {
		option(l)
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := l.ignorePath[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		dataLength := max(c.Writer.Size(), 0)

		attributes := []slog.Attr{
			slog.Int("status", status),
			slog.Int64("latency", time.Since(start).Milliseconds()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("data_length", dataLength),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if callId := c.GetHeader(navCallIdHeader); callId != "" {
			attributes = append(attributes, slog.String("call_id", callId))
		}
		if c.Errors != nil {
			attributes = append(attributes, slog.String("error", c.Errors.String()))
		}
		l.logger.LogAttrs(c.Request.Context(), l.levelFor(status),
			fmt.Sprintf("%s %s", c.Request.Method, path), attributes...)
	}
}
