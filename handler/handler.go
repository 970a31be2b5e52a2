package handler

import (
	"net/http"
)

// HandlerFunc answers a request whose parameters were bound into R.
//
//	type countryRequest struct {
//		ISO string `path:"ciso"`
//	}
//
//	h := handler.HandlerFunc[countryRequest](func(ctx handler.Context, req countryRequest) handler.Response {
//		return svc.CountryByISO(ctx, req.ISO)
//	})
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
// envelope.Envelope is the Response used by every API route.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from the request.
type Bind func(r *http.Request, v any) error

// ErrorHandler answers a request whose binding or rendering failed.
type ErrorHandler func(ctx Context, err error)

// Decorator wraps a HandlerFunc. The first decorator given to Wrap is the
// outermost.
type Decorator[R any] func(HandlerFunc[R]) HandlerFunc[R]

// Option configures Wrap.
type Option[R any] func(*wrapper[R])

type wrapper[R any] struct {
	binders    []Bind
	onError    ErrorHandler
	decorators []Decorator[R]
}

// WithBinders appends request binders, applied in order. The first failure
// stops binding.
func WithBinders[R any](binders ...Bind) Option[R] {
	return func(w *wrapper[R]) {
		w.binders = append(w.binders, binders...)
	}
}

// WithErrorHandler replaces the default envelope error handler.
func WithErrorHandler[R any](h ErrorHandler) Option[R] {
	return func(w *wrapper[R]) {
		if h != nil {
			w.onError = h
		}
	}
}

// WithDecorators appends decorators.
func WithDecorators[R any](decorators ...Decorator[R]) Option[R] {
	return func(w *wrapper[R]) {
		w.decorators = append(w.decorators, decorators...)
	}
}

// Wrap converts h to an http.HandlerFunc.
//
//	r.Get("/countries/{ciso}", handler.Wrap(h,
//		handler.WithBinders[countryRequest](binder.Path(chi.URLParam)),
//	))
//
// Binding and render failures, and a nil Response, go to the error handler,
// which by default answers with an envelope (see NewErrorHandler).
func Wrap[R any](h HandlerFunc[R], opts ...Option[R]) http.HandlerFunc {
	cfg := &wrapper[R]{onError: NewErrorHandler(nil)}
	for _, opt := range opts {
		opt(cfg)
	}

	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		h = cfg.decorators[i](h)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				cfg.onError(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.onError(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.onError(ctx, err)
		}
	}
}
