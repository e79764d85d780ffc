package auth

import "context"

type callerKey struct{}

func ContextWithCaller(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, callerKey{}, subject)
}

func CallerFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(callerKey{}).(string)
	return subject, ok
}
