package email

import (
	"context"
	"errors"
	"io"

	"gopkg.in/gomail.v2"

	"invoicebot/logger"
	"invoicebot/models"
)

// SMTPSender delivers invoice emails by direct mail submission with a
// native attachment, for deployments without a transactional-email
// provider.
type SMTPSender struct {
	dialer     *gomail.Dialer
	enabled    bool
	from       string
	senderName string
	log        *logger.Logger
}

// NewSMTPSender creates an SMTP-backed sender. With missing credentials
// the sender is built disabled and every send attempt fails fast.
func NewSMTPSender(host string, port int, senderEmail, senderPassword, senderName string, log *logger.Logger) *SMTPSender {
	if senderEmail == "" || senderPassword == "" {
		log.Errorf("SMTP sender disabled: SENDER_EMAIL or SENDER_PASSWORD not set")
		return &SMTPSender{enabled: false, log: log}
	}

	return &SMTPSender{
		dialer:     gomail.NewDialer(host, port, senderEmail, senderPassword),
		enabled:    true,
		from:       senderEmail,
		senderName: senderName,
		log:        log,
	}
}

func (s *SMTPSender) SendInvoiceEmail(ctx context.Context, msg *InvoiceEmail) error {
	if !s.enabled {
		return &models.EmailError{Err: errors.New("email sender is not configured")}
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.senderName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", invoiceSubject)
	m.SetBody("text/html", buildHTMLBody(msg))
	m.Attach(msg.PDFName,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(msg.PDF)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	// gomail has no context support; run the submission on the side so
	// the request honors its deadline even on a wedged SMTP connection.
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.log.Errorf("SMTP send error: %v", err)
			return &models.EmailError{Err: err}
		}
	case <-ctx.Done():
		s.log.Errorf("SMTP send timed out: %v", ctx.Err())
		return &models.EmailError{Err: ctx.Err()}
	}

	s.log.Infof("sent invoice email to %s via SMTP", msg.To)
	return nil
}
