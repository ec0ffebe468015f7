package requestdata

import "context"

type contextKey struct{}

var requestDataKey = contextKey{}

// RequestData carries per-request caller information into the service
// layer. ActorRef ends up on every change-log row the request produces.
type RequestData struct {
	TokenString string
	ActorRef    string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}

// ActorRef returns the caller reference for audit rows, falling back to
// "system" for unattributed (internal) mutations.
func ActorRef(ctx context.Context) string {
	if rd := GetRequestData(ctx); rd != nil && rd.ActorRef != "" {
		return rd.ActorRef
	}
	return "system"
}
