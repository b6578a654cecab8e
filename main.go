package main

import (
	"net/http"

	"invoicebot/config"
	"invoicebot/email"
	"invoicebot/handlers"
	"invoicebot/logger"
	"invoicebot/notify"
	"invoicebot/payment"
	"invoicebot/services"
	"invoicebot/webhook"
)

func buildEmailSender(cfg *config.Config, log *logger.Logger) email.InvoiceEmailSender {
	switch cfg.EmailTransport {
	case config.TransportSMTP:
		return email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPassword, cfg.SenderName, log)
	default:
		return email.NewResendSender(cfg.ResendAPIKey, cfg.SenderEmail, cfg.SenderName, log)
	}
}

func main() {
	log := logger.L

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	handler := handlers.NewInvoiceHandler(
		webhook.NewNormalizer(log),
		services.NewInvoiceService(log),
		payment.NewStripeGenerator(cfg.StripeAPIKey, cfg.StripeRedirectURL, log),
		buildEmailSender(cfg, log),
		notify.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannelID, log),
		log,
	)

	http.HandleFunc("/new_invoice", handler.HandleNewInvoice)
	log.Infof("starting invoice server on :%s (email transport: %s)", cfg.Port, cfg.EmailTransport)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
