// Package envelope wraps raw transport responses into a uniform value.
// Wrapping never fails: malformed bodies and HTTP error statuses degrade
// to nil fields plus recorded diagnostics.
package envelope

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"glmirror/internal/classify"
	"glmirror/internal/record"
)

// Envelope is the uniform result consumed by everything downstream of the
// transport. RawBody is always populated when the transport succeeded;
// JSON and Classified are each optional and independent.
type Envelope struct {
	StatusCode int
	Headers    map[string]string
	RawBody    []byte
	JSON       record.Value
	Classified record.Record
	Diags      []string
}

// OK reports whether the HTTP status is outside the 4xx/5xx range.
func (e *Envelope) OK() bool {
	return e.StatusCode < http.StatusBadRequest
}

// Wrapper wraps responses and logs diagnostics through the given logger.
type Wrapper struct {
	log *zap.Logger
}

// New returns a Wrapper. A nil logger disables diagnostic logging.
func New(log *zap.Logger) *Wrapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Wrapper{log: log}
}

// Wrap builds an Envelope from a raw response. It never fails: a JSON
// parse error or an HTTP error status is recorded as a diagnostic and the
// caller inspects StatusCode and JSON itself.
func (w *Wrapper) Wrap(status int, headers map[string]string, body []byte) Envelope {
	env := Envelope{
		StatusCode: status,
		Headers:    headers,
		RawBody:    body,
	}

	if status >= http.StatusBadRequest {
		diag := fmt.Sprintf("http error status %d", status)
		env.Diags = append(env.Diags, diag)
		w.log.Warn("response error", zap.Int("status", status))
	}

	v, err := record.FromJSON(body)
	if err != nil {
		env.Diags = append(env.Diags, fmt.Sprintf("json parse: %v", err))
		w.log.Warn("json conversion error", zap.Error(err))
		return env
	}
	env.JSON = v
	return env
}

// WrapAndClassify wraps the response and, when a JSON value was parsed,
// classifies it. Classification failure leaves Classified nil and records
// a diagnostic; the envelope is still returned.
func (w *Wrapper) WrapAndClassify(status int, headers map[string]string, body []byte) Envelope {
	env := w.Wrap(status, headers, body)
	if env.JSON == nil {
		return env
	}
	rec, err := classify.Classify(env.JSON)
	if err != nil {
		env.Diags = append(env.Diags, fmt.Sprintf("classify: %v", err))
		w.log.Warn("classification error", zap.Error(err))
		return env
	}
	env.Classified = rec
	w.log.Debug("classified response",
		zap.Int("status", status),
		zap.String("base", rec.BaseType()))
	return env
}

// Wrap is the package-level convenience with no logger.
func Wrap(status int, headers map[string]string, body []byte) Envelope {
	return New(nil).Wrap(status, headers, body)
}
