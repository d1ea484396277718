// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs zap logging with user-facing error responses so handlers
// can report a failure in one call. The operator sees a friendly message;
// the log line carries the underlying error.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger backed by the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogBadRequest logs a client error and responds 400 with a plain message.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, what string, err error, userMsg string) {
	e.Log.Warn(what,
		zap.String("path", r.URL.Path),
		zap.Error(err))
	http.Error(w, userMsg, http.StatusBadRequest)
}

// LogServerError logs an internal failure and renders the error page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, what string, err error, userMsg string) {
	e.Log.Error(what,
		zap.String("path", r.URL.Path),
		zap.Error(err))
	RenderServerError(w, r, userMsg)
}
