// Package billing processes payment provider webhooks that unlock lifetime access.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/finfreedom/fincalc/internal/domain"
)

// Event types acted upon.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentFailed     = "payment_intent.payment_failed"
)

// ErrMissingUser is returned for a completed checkout that names no user.
var ErrMissingUser = errors.New("no user id in checkout session")

// Event is the envelope of a webhook delivery.
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// CheckoutSession is the subset of a checkout session the service reads.
type CheckoutSession struct {
	ID                string            `json:"id"`
	ClientReferenceID string            `json:"client_reference_id"`
	Metadata          map[string]string `json:"metadata"`
	PaymentStatus     string            `json:"payment_status"`
}

// UserID resolves the paying user: metadata.userId first, then client_reference_id.
func (s CheckoutSession) UserID() string {
	if id := s.Metadata["userId"]; id != "" {
		return id
	}
	return s.ClientReferenceID
}

type paymentIntent struct {
	ID string `json:"id"`
}

// Granter unlocks lifetime access for a user.
type Granter interface {
	GrantLifetimeAccess(ctx context.Context, userID string, at time.Time) (domain.User, error)
}

// Outcome describes what a delivery did.
type Outcome string

const (
	OutcomeGranted Outcome = "granted"
	OutcomeLogged  Outcome = "logged"
	OutcomeIgnored Outcome = "ignored"
)

// Processor verifies and applies webhook deliveries.
type Processor struct {
	secret    string
	tolerance time.Duration
	granter   Granter
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewProcessor creates a processor verifying deliveries with secret.
func NewProcessor(secret string, granter Granter, log logrus.FieldLogger) *Processor {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Processor{
		secret:    secret,
		tolerance: DefaultTolerance,
		granter:   granter,
		log:       log.WithField("component", "billing"),
		now:       time.Now,
	}
}

// Configured reports whether a webhook secret is set.
func (p *Processor) Configured() bool { return p.secret != "" }

// Process verifies payload against the signature header and applies the event.
// The returned event is non-nil whenever the payload was authentic and parseable.
func (p *Processor) Process(ctx context.Context, payload []byte, signature string) (*Event, Outcome, error) {
	if err := VerifySignature(payload, signature, p.secret, p.tolerance, p.now()); err != nil {
		return nil, "", err
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, "", fmt.Errorf("decode event: %w", err)
	}
	entry := p.log.WithFields(logrus.Fields{"event_id": event.ID, "event_type": event.Type})

	switch event.Type {
	case EventCheckoutCompleted:
		var session CheckoutSession
		if err := json.Unmarshal(event.Data.Object, &session); err != nil {
			return &event, "", fmt.Errorf("decode checkout session: %w", err)
		}
		userID := session.UserID()
		if userID == "" {
			entry.Error("checkout session without user id")
			return &event, "", ErrMissingUser
		}
		if _, err := p.granter.GrantLifetimeAccess(ctx, userID, p.now().UTC()); err != nil {
			return &event, "", fmt.Errorf("grant lifetime access to %s: %w", userID, err)
		}
		entry.WithField("user_id", userID).Info("lifetime access granted")
		return &event, OutcomeGranted, nil

	case EventPaymentFailed:
		var intent paymentIntent
		if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
			entry.WithError(err).Warn("unreadable payment intent")
		}
		entry.WithField("payment_intent", intent.ID).Warn("payment failed")
		return &event, OutcomeLogged, nil

	default:
		entry.Debug("unhandled event type")
		return &event, OutcomeIgnored, nil
	}
}
