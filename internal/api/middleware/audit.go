package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

// auditResponseWriter tees the response body so the audit record can read the
// payload's own success indicator after the handler has produced it.
type auditResponseWriter struct {
	http.ResponseWriter
	body *bytes.Buffer
}

func (w *auditResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// auditPayload is the subset of the response envelope the recorder inspects.
// Success defaults to true unless the payload carries an explicit false.
type auditPayload struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Audit records the outcome of the wrapped handler: who, what, where, and
// whether it succeeded. Requests cancelled before the handler completes leave
// no record. Recording is fire-and-forget; it never fails the request.
func Audit(recorder ports.AuditRecorder, action, resource string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			buf := new(bytes.Buffer)
			c.Response().Writer = &auditResponseWriter{ResponseWriter: c.Response().Writer, body: buf}

			err := next(c)

			if c.Request().Context().Err() != nil {
				return err
			}

			rec := domain.AuditRecord{
				Action:     action,
				Resource:   resource,
				ResourceID: c.Param("id"),
				Method:     c.Request().Method,
				Path:       c.Request().URL.RequestURI(),
				IP:         c.RealIP(),
				UserAgent:  c.Request().UserAgent(),
				Success:    true,
				Timestamp:  time.Now().UTC(),
			}
			if principal, ok := PrincipalFrom(c); ok {
				rec.UserID = principal.ID
				rec.UserEmail = principal.Email
			}

			if err != nil {
				rec.Success = false
				rec.Message = err.Error()
			} else if payload := parseAuditPayload(buf); payload != nil {
				if payload.Success != nil {
					rec.Success = *payload.Success
				}
				rec.Message = payload.Message
			}

			recorder.Record(c.Request().Context(), rec)
			return err
		}
	}
}

func parseAuditPayload(r io.Reader) *auditPayload {
	var p auditPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil
	}
	return &p
}
