// Package reqctx carries the request id through a request's context so
// log lines from any layer can be correlated.
package reqctx

import "context"

type key int

const keyRequestID key = 0

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyRequestID).(string)
	return v, ok
}
