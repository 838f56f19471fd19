package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questmaster/backend/config"
	"github.com/questmaster/backend/pkg/logger"
	"gorm.io/gorm"
)

// HandlerFunc is the business handler of one route. A nil response with a nil
// error writes an empty success envelope.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context which is
// passed to the next middleware and the handler.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response envelope is determined, whether the
// handler succeeded or not.
type CloserFunc func(ctx context.Context)

type Router struct {
	inner gin.IRouter

	db      *gorm.DB
	cfg     config.Configs
	logger  logger.Logger
	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{
		inner:  gin.New(),
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Branch returns a sub router inheriting the current middleware chains. New
// middlewares registered on the branch do not affect the parent.
func (r *Router) Branch(pattern string) *Router {
	return &Router{
		inner:   r.inner.Group(pattern),
		db:      r.db,
		cfg:     r.cfg,
		logger:  r.logger,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Static(relativePath, root string) {
	r.inner.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.inner.(*gin.Engine)
}
