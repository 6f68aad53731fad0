package http

import "context"

// clientNameKey is the context key for the authenticated client name.
type clientNameKey struct{}

// WithClientName stores the authenticated client name in the context.
func WithClientName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, clientNameKey{}, name)
}

// GetClientName retrieves the authenticated client name from the context.
// Returns false if no client is present (authentication disabled or not run).
func GetClientName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(clientNameKey{}).(string)
	return name, ok
}
