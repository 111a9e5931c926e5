package core

import "context"

type contextKey string

const ctxKeyRunID contextKey = "scan_run_id"

// ContextWithRunID tags ctx with the ID of the scan running under it.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ctxKeyRunID, runID)
}

// RunIDFromContext returns the scan run ID, or "" outside a scan.
func RunIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRunID).(string); ok {
		return v
	}
	return ""
}
