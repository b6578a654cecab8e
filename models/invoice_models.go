package models

import (
	"fmt"
	"strings"
)

// FieldMap is the flattened, wire-format-independent representation of
// the invoice input fields, keyed by field name.
type FieldMap map[string]string

// InvoiceRequest holds the normalized fields of a single invoice
// submission. It lives for the duration of one HTTP request and is
// never persisted.
type InvoiceRequest struct {
	Client   string
	Service  string
	Amount   string
	Currency string
	Date     string
	Email    string
}

// InvoiceRequestFromFields builds an InvoiceRequest from a normalized
// field map. Call webhook.Validate on the map first; this does not
// re-check presence.
func InvoiceRequestFromFields(fields FieldMap) *InvoiceRequest {
	return &InvoiceRequest{
		Client:   fields["client"],
		Service:  fields["service"],
		Amount:   fields["amount"],
		Currency: strings.ToUpper(fields["currency"]),
		Date:     fields["date"],
		Email:    fields["email"],
	}
}

// PaymentLinkData represents the data needed to create a payment link
type PaymentLinkData struct {
	AmountMinor int64  // amount in the smallest currency unit, e.g. cents
	Currency    string // 3-letter code
	Description string
}

// ValidationError reports required invoice fields that were absent or
// empty after normalization.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing fields: %s", strings.Join(e.Missing, ", "))
}

// RenderError indicates the invoice PDF could not be generated.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("invoice render failed: %v", e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// PaymentLinkError indicates the payment provider call failed.
type PaymentLinkError struct {
	Err error
}

func (e *PaymentLinkError) Error() string { return fmt.Sprintf("payment link failed: %v", e.Err) }
func (e *PaymentLinkError) Unwrap() error { return e.Err }

// EmailError indicates the notification transport failed or was never
// usable (missing credentials).
type EmailError struct {
	Err error
}

func (e *EmailError) Error() string { return fmt.Sprintf("email send failed: %v", e.Err) }
func (e *EmailError) Unwrap() error { return e.Err }

// ConfigurationError indicates a required credential or setting was
// absent at startup.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}
