package appointment

import (
	"context"
	"fmt"

	"appointify/config"
	"appointify/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentHandler records the payment intent for a new appointment and
// returns the reference to store on it. Capture and settlement happen
// outside this system; only the bookkeeping lives here.
type PaymentHandler interface {
	CreateIntent(ctx context.Context, appt *models.Appointment) (string, error)
}

// StripePaymentHandler creates Stripe payment intents for booked
// appointments. Without a configured key it falls back to a locally
// generated reference so development environments stay offline.
type StripePaymentHandler struct {
	Logger *zap.Logger
}

// CreateIntent creates a payment intent for the appointment amount and
// returns its id.
func (h *StripePaymentHandler) CreateIntent(ctx context.Context, appt *models.Appointment) (string, error) {
	if config.AppConfig.StripeKey == "" {
		ref := "pi_" + uuid.New().String()
		h.Logger.Info("Stripe key not configured, issuing local payment reference",
			zap.String("appointment", appt.ID), zap.String("reference", ref))
		return ref, nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(appt.Amount * 100)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.AddMetadata("appointment_id", appt.ID)
	params.AddMetadata("agent_id", appt.AgentID)
	params.AddMetadata("client_id", appt.ClientID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	h.Logger.Info("Created payment intent",
		zap.String("appointment", appt.ID), zap.String("intent", pi.ID))
	return pi.ID, nil
}
