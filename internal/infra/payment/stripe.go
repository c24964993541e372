package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

const (
	ProviderStripe = "stripe"

	stripeCurrency = "cop"
)

// StripeGateway opens a Stripe Checkout session for the amount due and hands back
// its URL. The payment itself completes on Stripe's page.
type StripeGateway struct {
	appURL string
}

func NewStripeGateway(secretKey, appURL string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, errors.New("Stripe key not configured")
	}
	stripe.Key = secretKey
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return &StripeGateway{appURL: appURL}, nil
}

func (g *StripeGateway) Provider() string { return ProviderStripe }

func (g *StripeGateway) Pay(ctx context.Context, req Request) (Receipt, error) {
	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(g.appURL + "/?pago=ok"),
		CancelURL:  stripe.String(g.appURL + "/?pago=cancelado"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(stripeCurrency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					// COP is a two-decimal currency on Stripe
					UnitAmount: stripe.Int64(req.Amount * 100),
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(req.Reference),
	}
	params.Context = ctx
	params.AddMetadata("browser_id", req.Reference)

	s, err := checkoutsession.New(params)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{
		Provider:    ProviderStripe,
		CheckoutURL: s.URL,
		SessionID:   s.ID,
	}, nil
}
