package payment

import (
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentlink"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/product"

	"invoicebot/logger"
	"invoicebot/models"
)

// StripeGenerator implements PaymentLinkGenerator for Stripe
type StripeGenerator struct {
	apiKey      string
	redirectURL string
	log         *logger.Logger
}

// NewStripeGenerator creates a new Stripe payment link generator.
// redirectURL is where the payer lands after completing the payment.
func NewStripeGenerator(apiKey, redirectURL string, log *logger.Logger) PaymentLinkGenerator {
	return &StripeGenerator{
		apiKey:      apiKey,
		redirectURL: redirectURL,
		log:         log,
	}
}

// GenerateLink creates a hosted Stripe payment link for a one-time
// invoice payment. Any provider error is fatal to the request; there
// is no retry.
func (s *StripeGenerator) GenerateLink(data *models.PaymentLinkData) (string, error) {
	stripe.Key = s.apiKey

	// Create a product
	productParams := &stripe.ProductParams{
		Name:        stripe.String(data.Description),
		Description: stripe.String(data.Description),
	}
	product, err := product.New(productParams)
	if err != nil {
		s.log.Errorf("Stripe product error: %v", err)
		return "", &models.PaymentLinkError{Err: fmt.Errorf("failed to create Stripe product: %w", err)}
	}

	// Create a price
	priceParams := &stripe.PriceParams{
		Currency:   stripe.String(strings.ToLower(data.Currency)),
		UnitAmount: stripe.Int64(data.AmountMinor),
		Product:    stripe.String(product.ID),
	}
	price, err := price.New(priceParams)
	if err != nil {
		s.log.Errorf("Stripe price error: %v", err)
		return "", &models.PaymentLinkError{Err: fmt.Errorf("failed to create Stripe price: %w", err)}
	}

	// Create a payment link
	linkParams := &stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{
				Price:    stripe.String(price.ID),
				Quantity: stripe.Int64(1),
			},
		},
		AfterCompletion: &stripe.PaymentLinkAfterCompletionParams{
			Type: stripe.String("redirect"),
			Redirect: &stripe.PaymentLinkAfterCompletionRedirectParams{
				URL: stripe.String(s.redirectURL),
			},
		},
	}
	link, err := paymentlink.New(linkParams)
	if err != nil {
		s.log.Errorf("Stripe payment link error: %v", err)
		return "", &models.PaymentLinkError{Err: fmt.Errorf("failed to create Stripe payment link: %w", err)}
	}

	s.log.Infof("created Stripe payment link %s (ID: %s)", link.URL, link.ID)
	return link.URL, nil
}
