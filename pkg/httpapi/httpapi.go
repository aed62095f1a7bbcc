// Package httpapi binds the service to HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"callorder/pkg/logger"
	"callorder/pkg/order"
	"callorder/pkg/otel"
	"callorder/pkg/service"
	"callorder/pkg/store"
)

// Handler serves the call and menu endpoints.
type Handler struct {
	svc *service.Service
	log *logger.Logger
}

// Options configures the router.
type Options struct {
	Tracer   trace.Tracer
	// Gatherer enables /metrics when set.
	Gatherer prometheus.Gatherer
}

// New creates a Handler.
func New(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Router returns the full HTTP handler, CORS included.
func (h *Handler) Router(opts Options) http.Handler {
	r := mux.NewRouter()
	r.Use(traceMiddleware(opts.Tracer))

	r.HandleFunc("/menu", h.getMenu).Methods(http.MethodGet)
	r.HandleFunc("/menu/items", h.addMenuItem).Methods(http.MethodPost)
	r.HandleFunc("/menu/items", h.clearMenu).Methods(http.MethodDelete)

	r.HandleFunc("/calls", h.createCall).Methods(http.MethodPost)
	r.HandleFunc("/calls/{id}", h.getCall).Methods(http.MethodGet)
	r.HandleFunc("/calls/{id}/order", h.getOrder).Methods(http.MethodGet)
	r.HandleFunc("/calls/{id}/order", h.clearOrder).Methods(http.MethodDelete)
	r.HandleFunc("/calls/{id}/order/items", h.addItems).Methods(http.MethodPost)
	r.HandleFunc("/calls/{id}/order/items", h.removeItems).Methods(http.MethodDelete)

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return cors.AllowAll().Handler(r)
}

func traceMiddleware(tracer trace.Tracer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if tracer != nil {
				ctx = otel.InjectTracing(ctx, tracer)
			}
			name := r.Method + " " + r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					name = r.Method + " " + tpl
				}
			}
			ctx, span := otel.AddSpan(ctx, name, attribute.String("http.method", r.Method))
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// itemsRequest names a menu item and how many units to add or remove.
type itemsRequest struct {
	Item     string `json:"item"`
	Quantity *int   `json:"quantity,omitempty" minimum:"1" maximum:"1000"`
}

func (req itemsRequest) quantity() int {
	if req.Quantity == nil {
		return 1
	}
	return *req.Quantity
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps store errors to status codes.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case order.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case store.IsFatal(err):
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
