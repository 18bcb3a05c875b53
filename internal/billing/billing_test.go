package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finfreedom/fincalc/internal/domain"
)

const secret = "whsec_test"

type fakeGranter struct {
	granted []string
	err     error
}

func (f *fakeGranter) GrantLifetimeAccess(_ context.Context, userID string, at time.Time) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	f.granted = append(f.granted, userID)
	return domain.User{ID: userID, HasLifetimeAccess: true, SubscriptionDate: &at}, nil
}

func newProcessor(g Granter, now time.Time) *Processor {
	p := NewProcessor(secret, g, nil)
	p.now = func() time.Time { return now }
	return p
}

func TestVerifySignature(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	payload := []byte(`{"id":"evt_1"}`)
	header := SignPayload(payload, secret, now)

	tests := []struct {
		name    string
		payload []byte
		header  string
		secret  string
		now     time.Time
		wantErr error
	}{
		{"valid", payload, header, secret, now, nil},
		{"valid within tolerance", payload, header, secret, now.Add(4 * time.Minute), nil},
		{"extra v0 and second v1", payload, "v0=abc," + header + ",v1=deadbeef", secret, now, nil},
		{"missing header", payload, "", secret, now, ErrNoSignature},
		{"stale", payload, header, secret, now.Add(6 * time.Minute), ErrInvalidSignature},
		{"tampered body", []byte(`{"id":"evt_2"}`), header, secret, now, ErrInvalidSignature},
		{"wrong secret", payload, header, "other", now, ErrInvalidSignature},
		{"no timestamp", payload, "v1=00", secret, now, ErrInvalidSignature},
		{"bad timestamp", payload, "t=soon,v1=00", secret, now, ErrInvalidSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(tt.payload, tt.header, tt.secret, DefaultTolerance, tt.now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcess_CheckoutCompleted(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cases := []struct {
		name   string
		object string
		want   string
	}{
		{"metadata user", `{"id":"cs_1","metadata":{"userId":"u-meta"},"client_reference_id":"u-ref"}`, "u-meta"},
		{"client reference fallback", `{"id":"cs_2","client_reference_id":"u-ref"}`, "u-ref"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := &fakeGranter{}
			p := newProcessor(g, now)
			payload := []byte(fmt.Sprintf(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":%s}}`, c.object))

			event, outcome, err := p.Process(context.Background(), payload, SignPayload(payload, secret, now))
			require.NoError(t, err)
			assert.Equal(t, OutcomeGranted, outcome)
			assert.Equal(t, "evt_1", event.ID)
			assert.Equal(t, []string{c.want}, g.granted)
		})
	}
}

func TestProcess_Errors(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	ctx := context.Background()

	t.Run("bad signature", func(t *testing.T) {
		p := newProcessor(&fakeGranter{}, now)
		_, _, err := p.Process(ctx, []byte(`{}`), "t=1,v1=00")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("missing user", func(t *testing.T) {
		g := &fakeGranter{}
		p := newProcessor(g, now)
		payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)
		_, _, err := p.Process(ctx, payload, SignPayload(payload, secret, now))
		assert.ErrorIs(t, err, ErrMissingUser)
		assert.Empty(t, g.granted)
	})

	t.Run("grant fails", func(t *testing.T) {
		boom := errors.New("db down")
		p := newProcessor(&fakeGranter{err: boom}, now)
		payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"client_reference_id":"u1"}}}`)
		_, _, err := p.Process(ctx, payload, SignPayload(payload, secret, now))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("not json", func(t *testing.T) {
		p := newProcessor(&fakeGranter{}, now)
		payload := []byte(`not json`)
		_, _, err := p.Process(ctx, payload, SignPayload(payload, secret, now))
		assert.ErrorContains(t, err, "decode event")
	})
}

func TestProcess_OtherEvents(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	g := &fakeGranter{}
	p := newProcessor(g, now)

	failed := []byte(`{"id":"evt_2","type":"payment_intent.payment_failed","data":{"object":{"id":"pi_1"}}}`)
	_, outcome, err := p.Process(context.Background(), failed, SignPayload(failed, secret, now))
	require.NoError(t, err)
	assert.Equal(t, OutcomeLogged, outcome)

	other := []byte(`{"id":"evt_3","type":"customer.created","data":{"object":{}}}`)
	event, outcome, err := p.Process(context.Background(), other, SignPayload(other, secret, now))
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Equal(t, "customer.created", event.Type)
	assert.Empty(t, g.granted)
	assert.True(t, p.Configured())
}

func TestProcess_PaymentFailedWithUnreadableObject(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	log, hook := test.NewNullLogger()
	p := NewProcessor(secret, &fakeGranter{}, log)
	p.now = func() time.Time { return now }

	payload := []byte(`{"id":"evt_4","type":"payment_intent.payment_failed","data":{"object":"pi_1"}}`)
	_, outcome, err := p.Process(context.Background(), payload, SignPayload(payload, secret, now))
	require.NoError(t, err)
	assert.Equal(t, OutcomeLogged, outcome)

	var messages []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			messages = append(messages, e.Message)
		}
	}
	assert.Contains(t, messages, "unreadable payment intent")
	assert.Contains(t, messages, "payment failed")
}
