package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKeyLog struct{}
type ctxKeyRequestID struct{}

type responseRecorder struct {
	b      int
	status int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.b += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

// Logger tags every request with an id, puts a request-scoped logger in the
// context and logs the outcome. Panics in later handlers are logged and
// answered with a 500.
func Logger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := uuid.New().String()
			start := time.Now()
			rr := &responseRecorder{w: w}
			w.Header().Set("X-Request-ID", requestID)
			reqLog := log.WithFields(logrus.Fields{
				"http.req.path":   r.URL.Path,
				"http.req.method": r.Method,
				"http.req.id":     requestID,
			})
			if v, ok := r.Context().Value(ctxKeySessionID{}).(string); ok {
				reqLog = reqLog.WithField("session", v)
			}
			reqLog.Debug("request started")
			defer func() {
				if p := recover(); p != nil {
					reqLog.WithField("panic", p).Error("request panicked")
					if rr.status == 0 {
						http.Error(rr, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					}
				}
				reqLog.WithFields(logrus.Fields{
					"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
					"http.resp.status":  rr.status,
					"http.resp.bytes":   rr.b,
				}).Debug("request complete")
			}()

			ctx = context.WithValue(ctx, ctxKeyLog{}, reqLog)
			ctx = context.WithValue(ctx, ctxKeyRequestID{}, requestID)
			next.ServeHTTP(rr, r.WithContext(ctx))
		})
	}
}

// LoggerFrom returns the request logger, or the standard logger outside a
// request.
func LoggerFrom(ctx context.Context) logrus.FieldLogger {
	if log, ok := ctx.Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}

// RequestID returns the id Logger assigned to the request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}
