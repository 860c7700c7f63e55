package helpers

import (
	"context"

	"github.com/companieshouse/chs.go/log"
	"github.com/google/uuid"
)

// RequestIDHeader is the inbound correlation header carrying a caller
// supplied request id.
const RequestIDHeader = "X-Request-Id"

// IsolationContext identifies one mutating operation. TransactionID is
// unique per top-level operation; RequestID is the caller's correlation id
// and is carried unchanged into every nested operation.
type IsolationContext struct {
	TransactionID string
	RequestID     string
}

// LogData returns the identifiers in the form expected by log.Data.
func (ic IsolationContext) LogData() log.Data {
	return log.Data{"transaction_id": ic.TransactionID, "request_id": ic.RequestID}
}

// WithRequestID records a caller supplied request id on ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// GetIsolationContext returns the isolation context of ctx, if any.
func GetIsolationContext(ctx context.Context) (IsolationContext, bool) {
	ic, ok := ctx.Value(ContextKeyIsolation).(IsolationContext)
	return ic, ok
}

// BeginOperation returns a context carrying the isolation context of the
// operation about to run. A context that already carries one belongs to an
// enclosing operation and is returned as is, so nested operations share the
// transaction and request ids of their parent. Otherwise a new transaction
// id is minted and the request id is taken from ctx, or minted when the
// caller supplied none.
func BeginOperation(ctx context.Context) (context.Context, IsolationContext) {
	if ic, ok := GetIsolationContext(ctx); ok && ic.TransactionID != "" {
		return ctx, ic
	}

	requestID, _ := ctx.Value(ContextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ic := IsolationContext{
		TransactionID: uuid.NewString(),
		RequestID:     requestID,
	}
	return context.WithValue(ctx, ContextKeyIsolation, ic), ic
}
