package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questmaster/backend/pkg/errorx"
	"github.com/questmaster/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := setupContext(router, ginCtx)
		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		var req Request
		var bindErr error
		switch method {
		case http.MethodGet:
			bindErr = ginCtx.ShouldBindQuery(&req)
		case http.MethodPost:
			if ginCtx.Request.ContentLength > 0 {
				bindErr = ginCtx.ShouldBindJSON(&req)
			}
		}

		if bindErr != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", bindErr)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			writeResponse(ctx)
			return
		}

		for _, middleware := range router.befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				writeResponse(ctx)
				return
			}

			ctx = newCtx
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
		} else {
			ctx = xcontext.WithResponse(ctx, resp)
		}

		for _, middleware := range router.afters {
			newCtx, err := middleware(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				break
			}

			ctx = newCtx
		}

		writeResponse(ctx)
	}
}

func setupContext(router *Router, ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	ctx = xcontext.WithDB(ctx, router.db)
	ctx = xcontext.WithConfigs(ctx, router.cfg)
	ctx = xcontext.WithLogger(ctx, router.logger)
	ctx = xcontext.WithHTTPRequest(ctx, ginCtx.Request)
	ctx = xcontext.WithHTTPWriter(ctx, ginCtx.Writer)
	ctx = xcontext.WithError(ctx, nil)
	ctx = xcontext.WithResponse(ctx, nil)
	return ctx
}
