package httpapi

import "context"

// serverBaseCtx is canceled on process shutdown. Handlers join it with the
// request context so an in-flight generation stops on either signal.
var serverBaseCtx = context.Background()

// SetBaseContext installs the process-level base context. A nil ctx restores
// a plain background context.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context that ends when either parent does. The
// returned cancel releases the watchers and must be called when the handler
// finishes.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	stopA := context.AfterFunc(a, cancel)
	stopB := context.AfterFunc(b, cancel)
	return ctx, func() {
		stopA()
		stopB()
		cancel()
	}
}
