package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	stripe "github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"orderflow/internal/entities"
	retrierconfig "orderflow/pkg/retrier"
	"orderflow/pkg/retrier/backoff_adapter"
)

const (
	providerName = "stripe"
)

const (
	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

var ErrEmptyReference = errors.New("payment reference is empty")

type PaymentGateway struct {
	client  client
	retrier retrier
}

// NewStripeClient собирает клиент PaymentIntents поверх стандартного API backend.
func NewStripeClient(secretKey string) *paymentintent.Client {
	return &paymentintent.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: secretKey,
	}
}

func New(client client) *PaymentGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &PaymentGateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
	}
}

// Authorize создаёт PaymentIntent на полную сумму заказа. Повторы безопасны:
// все попытки идут с одним idempotency key.
func (g *PaymentGateway) Authorize(ctx context.Context, request entities.PaymentRequest) (*entities.PaymentAuthorization, error) {
	var intent *stripe.PaymentIntent

	err := g.executeWithMetrics(ctx, "CreatePaymentIntent", func(context.Context) error {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(request.Amount.MinorUnits()),
			Currency: stripe.String(request.Currency),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
			Metadata: request.Metadata,
		}
		if request.IdempotencyKey != "" {
			params.SetIdempotencyKey(request.IdempotencyKey)
		}

		var err error
		intent, err = g.client.New(params)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("gateway payment, authorize %s %s: %w", request.Amount, request.Currency, err)
	}

	return &entities.PaymentAuthorization{
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (g *PaymentGateway) Cancel(ctx context.Context, reference string) error {
	if reference == "" {
		return ErrEmptyReference
	}

	err := g.executeWithMetrics(ctx, "CancelPaymentIntent", func(context.Context) error {
		_, err := g.client.Cancel(reference, &stripe.PaymentIntentCancelParams{
			CancellationReason: stripe.String(string(stripe.PaymentIntentCancellationReasonAbandoned)),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("gateway payment, cancel %s: %w", reference, err)
	}

	return nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}

	switch {
	case stripeErr.HTTPStatusCode == http.StatusTooManyRequests,
		stripeErr.HTTPStatusCode >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

func (g *PaymentGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	outcome := getOutcome(err)
	GatewayRequestDuration.WithLabelValues(providerName, method, outcome).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(providerName, method, outcome).Inc()
	}

	return err
}

func getOutcome(err error) string {
	if err == nil {
		return "OK"
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode != 0 {
		return strconv.Itoa(stripeErr.HTTPStatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "CANCELED"
	}
	return "UNKNOWN"
}
