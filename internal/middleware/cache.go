package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// CacheResponse serves successful JSON responses from redis keyed by request
// URI. A nil client turns the middleware into a pass-through, and any redis
// error falls back to the handler instead of failing the request.
func CacheResponse(client *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil {
				return next(c)
			}

			key := "cache:" + c.Request().RequestURI

			cached, err := client.Get(c.Request().Context(), key).Bytes()
			if err == nil {
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, cached)
			}
			if err != redis.Nil {
				logrus.WithError(err).Warn("response cache lookup failed")
				return next(c)
			}

			res := c.Response()
			buf := new(bytes.Buffer)
			writer := &teeResponseWriter{ResponseWriter: res.Writer, tee: io.MultiWriter(res.Writer, buf)}
			res.Writer = writer

			if err := next(c); err != nil {
				return err
			}

			if res.Status == http.StatusOK {
				if err := client.Set(c.Request().Context(), key, buf.Bytes(), ttl).Err(); err != nil {
					logrus.WithError(err).Warn("failed to store response in cache")
				}
			}
			return nil
		}
	}
}

type teeResponseWriter struct {
	http.ResponseWriter
	tee io.Writer
}

func (w *teeResponseWriter) Write(b []byte) (int, error) {
	return w.tee.Write(b)
}
