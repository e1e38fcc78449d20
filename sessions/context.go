package sessions

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying h
func NewContext(ctx context.Context, h *Holder) context.Context {
	return context.WithValue(ctx, contextKey{}, h)
}

// FromContext returns the holder carried by ctx
func FromContext(ctx context.Context) (*Holder, bool) {
	h, ok := ctx.Value(contextKey{}).(*Holder)
	return h, ok && h != nil
}

// MustFromContext returns the holder carried by ctx and panics when there is
// none. Reaching for the session outside a provider is a programming error.
func MustFromContext(ctx context.Context) *Holder {
	h, ok := FromContext(ctx)
	if !ok {
		panic("sessions: MustFromContext called without a session holder in the context")
	}
	return h
}
