package app

import "context"

type appKey struct{}

// SetAppInContext returns a copy of ctx carrying a
func SetAppInContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// GetAppFromContext returns the App stored by SetAppInContext, or nil
func GetAppFromContext(ctx context.Context) *App {
	a, _ := ctx.Value(appKey{}).(*App)
	return a
}
