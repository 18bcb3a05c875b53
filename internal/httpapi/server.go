// Package httpapi exposes the calculators, usage metering and billing webhook over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/finfreedom/fincalc/internal/billing"
	"github.com/finfreedom/fincalc/internal/calculation"
	"github.com/finfreedom/fincalc/internal/metrics"
	"github.com/finfreedom/fincalc/internal/usage"
)

// maxBodyBytes bounds request bodies, webhook payloads included.
const maxBodyBytes = 1 << 20

// Server wires the HTTP routes to the services.
type Server struct {
	engine  *calculation.CalculationEngine
	usage   *usage.Service
	billing *billing.Processor
	auth    *Authenticator
	limiter *RateLimiter
	log     logrus.FieldLogger
}

// NewServer creates the HTTP layer. All dependencies are required.
func NewServer(engine *calculation.CalculationEngine, usageSvc *usage.Service, processor *billing.Processor,
	auth *Authenticator, limiter *RateLimiter, log logrus.FieldLogger) *Server {
	return &Server{
		engine:  engine,
		usage:   usageSvc,
		billing: processor,
		auth:    auth,
		limiter: limiter,
		log:     log,
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogger, metrics.InstrumentHandler)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.Handle("/api/billing/webhook", s.limiter.Handler(http.HandlerFunc(s.handleWebhook))).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requireUser, s.limiter.Handler)
	api.HandleFunc("/calculators/buy-vs-rent", s.handleBuyVsRent).Methods(http.MethodPost)
	api.HandleFunc("/calculators/compound-interest", s.handleCompoundInterest).Methods(http.MethodPost)
	api.HandleFunc("/calculations/usage-status", s.handleUsageStatus).Methods(http.MethodGet)
	api.HandleFunc("/calculations/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/calculations/{id}", s.handleGetCalculation).Methods(http.MethodGet)

	return r
}

// requireUser authenticates the bearer token and registers the user on first sight.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.Authenticate(r)
		if err != nil {
			s.log.WithError(err).WithField("path", r.URL.Path).Debug("authentication failed")
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if _, err := s.usage.EnsureUser(r.Context(), claims.Subject, claims.Email); err != nil {
			s.log.WithError(err).Error("register user")
			writeError(w, http.StatusInternalServerError, "Failed to load user")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), claims)))
	})
}

type loggingRecorder struct {
	http.ResponseWriter
	status int
}

func (r *loggingRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &loggingRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote":      clientIP(r),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Info("request")
	})
}
