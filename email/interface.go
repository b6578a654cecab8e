package email

import "context"

// InvoiceEmail describes one invoice notification: recipient, the
// human-readable bits for the message body, the hosted payment URL,
// and the rendered PDF to attach.
type InvoiceEmail struct {
	To         string
	ClientName string
	Service    string
	Amount     string
	Currency   string
	PaymentURL string
	PDFName    string
	PDF        []byte
}

// InvoiceEmailSender delivers an invoice email. Implementations are
// transport-specific (Resend API, SMTP); exactly one is wired per
// deployment.
type InvoiceEmailSender interface {
	SendInvoiceEmail(ctx context.Context, msg *InvoiceEmail) error
}
