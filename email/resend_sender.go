package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"

	"invoicebot/logger"
	"invoicebot/models"
)

// ResendSender delivers invoice emails through the Resend API with the
// PDF embedded as an attachment.
type ResendSender struct {
	client  *resend.Client
	enabled bool
	from    string
	log     *logger.Logger
}

// NewResendSender creates a Resend-backed sender. With missing
// credentials the sender is built disabled: the problem is logged once
// here and every send attempt fails fast instead of hitting the API.
func NewResendSender(apiKey, senderEmail, senderName string, log *logger.Logger) *ResendSender {
	if apiKey == "" || senderEmail == "" {
		log.Errorf("Resend sender disabled: RESEND_API_KEY or SENDER_EMAIL not set")
		return &ResendSender{enabled: false, log: log}
	}

	return &ResendSender{
		client:  resend.NewClient(apiKey),
		enabled: true,
		from:    fmt.Sprintf("%s <%s>", senderName, senderEmail),
		log:     log,
	}
}

func (s *ResendSender) SendInvoiceEmail(ctx context.Context, msg *InvoiceEmail) error {
	if !s.enabled {
		return &models.EmailError{Err: errors.New("email sender is not configured")}
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: invoiceSubject,
		Html:    buildHTMLBody(msg),
		Attachments: []*resend.Attachment{
			{
				Filename:    msg.PDFName,
				Content:     msg.PDF,
				ContentType: "application/pdf",
			},
		},
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.log.Errorf("Resend send error: %v", err)
		return &models.EmailError{Err: err}
	}

	s.log.Infof("sent invoice email to %s (message ID: %s)", msg.To, sent.Id)
	return nil
}
