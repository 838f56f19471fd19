package middleware

import (
	"context"

	"github.com/questmaster/backend/pkg/router"
	"github.com/questmaster/backend/pkg/xcontext"
)

// Logger logs every finished request with its outcome.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		if err := xcontext.Error(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("%s %s failed: %v", req.Method, req.URL.Path, err)
			return
		}

		xcontext.Logger(ctx).Infof("%s %s", req.Method, req.URL.Path)
	}
}
