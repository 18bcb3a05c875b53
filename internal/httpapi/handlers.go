package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/finfreedom/fincalc/internal/billing"
	"github.com/finfreedom/fincalc/internal/config"
	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/internal/metrics"
	"github.com/finfreedom/fincalc/internal/storage"
	"github.com/finfreedom/fincalc/internal/usage"
)

type calculationResponse struct {
	CalculationID string             `json:"calculationId"`
	Result        any                `json:"result"`
	Usage         domain.UsageStatus `json:"usage"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBuyVsRent(w http.ResponseWriter, r *http.Request) {
	in := config.DefaultBuyVsRentInputs()
	if err := decodeInputs(w, r, &in, func() error {
		parsed, err := config.ParseBuyVsRentForm(r.PostForm)
		in = parsed
		return err
	}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := config.ValidateBuyVsRent(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var result domain.BuyVsRentResult
	s.runCalculator(w, r, domain.CalculatorBuyVsRent, func() (any, any) {
		result = s.engine.BuyVsRent(in)
		return in, result
	}, func() string { return string(result.Recommendation) })
}

func (s *Server) handleCompoundInterest(w http.ResponseWriter, r *http.Request) {
	in := config.DefaultCompoundInterestInputs()
	if err := decodeInputs(w, r, &in, func() error {
		parsed, err := config.ParseCompoundInterestForm(r.PostForm)
		in = parsed
		return err
	}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := config.ValidateCompoundInterest(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.runCalculator(w, r, domain.CalculatorCompoundInterest, func() (any, any) {
		return in, s.engine.CompoundInterest(in)
	}, func() string { return "" })
}

// runCalculator meters one run. outcome labels the run in metrics after compute has run.
func (s *Server) runCalculator(w http.ResponseWriter, r *http.Request, calcType domain.CalculatorType,
	compute func() (any, any), outcome func() string) {
	userID := UserID(r.Context())

	var result any
	calc, status, err := s.usage.Run(r.Context(), userID, calcType, func() (any, any) {
		in, out := compute()
		result = out
		return in, out
	})
	if errors.Is(err, usage.ErrPaymentRequired) {
		metrics.RecordPaywallDenial(string(calcType))
		writeJSON(w, http.StatusPaymentRequired, errorResponse{Error: err.Error(), Usage: status})
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("calculator run failed")
		writeError(w, http.StatusInternalServerError, "Failed to run calculator")
		return
	}

	metrics.RecordCalculation(string(calcType), outcome())
	writeJSON(w, http.StatusOK, calculationResponse{
		CalculationID: calc.ID,
		Result:        result,
		Usage:         status,
	})
}

// decodeInputs fills dst from a JSON body, or calls parseForm for form posts. JSON fields
// left out keep the defaults already in dst.
func decodeInputs(w http.ResponseWriter, r *http.Request, dst any, parseForm func() error) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return err
		}
		return parseForm()
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return err
		}
		return parseForm()
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errors.New("invalid JSON body")
	}
	return nil
}

func (s *Server) handleUsageStatus(w http.ResponseWriter, r *http.Request) {
	calcType := domain.CalculatorType(r.URL.Query().Get("calculatorType"))
	if calcType == "" {
		writeError(w, http.StatusBadRequest, "Missing calculatorType parameter")
		return
	}
	if !calcType.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown calculatorType")
		return
	}

	status, err := s.usage.Status(r.Context(), UserID(r.Context()), calcType)
	if err != nil {
		s.handleServiceError(w, err, "Failed to check usage status")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	calcType := domain.CalculatorType(q.Get("calculatorType"))
	if calcType != "" && !calcType.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown calculatorType")
		return
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	calcs, err := s.usage.History(r.Context(), UserID(r.Context()), calcType, limit)
	if err != nil {
		s.handleServiceError(w, err, "Failed to fetch history")
		return
	}
	if calcs == nil {
		calcs = []domain.Calculation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"calculations": calcs})
}

func (s *Server) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	calc, err := s.usage.Get(r.Context(), UserID(r.Context()), id)
	if err != nil {
		s.handleServiceError(w, err, "Failed to fetch calculation")
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

func (s *Server) handleServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, usage.ErrForbidden):
		writeError(w, http.StatusForbidden, "Lifetime access required")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		s.log.WithError(err).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if !s.billing.Configured() {
		writeError(w, http.StatusInternalServerError, "Webhook is not configured")
		return
	}
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	event, outcome, err := s.billing.Process(r.Context(), payload, r.Header.Get(billing.SignatureHeader))
	eventType := ""
	if event != nil {
		eventType = event.Type
	}
	switch {
	case err == nil:
		metrics.RecordWebhookEvent(eventType, string(outcome))
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	case errors.Is(err, billing.ErrNoSignature):
		metrics.RecordWebhookEvent(eventType, "rejected")
		writeError(w, http.StatusBadRequest, "No signature")
	case errors.Is(err, billing.ErrInvalidSignature):
		metrics.RecordWebhookEvent(eventType, "rejected")
		s.log.WithError(err).Warn("webhook signature verification failed")
		writeError(w, http.StatusBadRequest, "Webhook signature verification failed")
	case errors.Is(err, billing.ErrMissingUser):
		metrics.RecordWebhookEvent(eventType, "rejected")
		writeError(w, http.StatusBadRequest, "No user ID in session")
	default:
		metrics.RecordWebhookEvent(eventType, "failed")
		s.log.WithError(err).Error("webhook handler failed")
		writeError(w, http.StatusInternalServerError, "Webhook handler failed")
	}
}
