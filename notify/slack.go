package notify

import (
	"bytes"
	"fmt"

	"github.com/slack-go/slack"

	"invoicebot/logger"
	"invoicebot/models"
)

// SlackNotifier posts issued invoices to an ops channel: a summary
// message with the rendered PDF attached. It is best-effort; failures
// are logged and never affect the webhook response. When the token or
// channel is unconfigured the notifier is a no-op.
type SlackNotifier struct {
	client    *slack.Client
	channelID string
	enabled   bool
	log       *logger.Logger
}

func NewSlackNotifier(botToken, channelID string, log *logger.Logger) *SlackNotifier {
	if botToken == "" || channelID == "" {
		log.Infof("Slack notifications disabled (SLACK_BOT_TOKEN/SLACK_CHANNEL_ID not set)")
		return &SlackNotifier{enabled: false, log: log}
	}
	return &SlackNotifier{
		client:    slack.New(botToken),
		channelID: channelID,
		enabled:   true,
		log:       log,
	}
}

// InvoiceIssued uploads the invoice PDF with a summary message to the
// ops channel.
func (n *SlackNotifier) InvoiceIssued(inv *models.InvoiceRequest, pdfName string, pdf []byte, paymentURL string) {
	if !n.enabled {
		return
	}

	message := fmt.Sprintf(
		"Invoice sent to *%s* (%s)\n*Service:* %s\n*Amount:* %s %s\n*Payment link:* %s",
		inv.Client, inv.Email, inv.Service, inv.Amount, inv.Currency, paymentURL,
	)

	uploadParams := slack.FileUploadParameters{
		Reader:         bytes.NewReader(pdf),
		Filename:       pdfName,
		Title:          fmt.Sprintf("Invoice for %s", inv.Client),
		Filetype:       "pdf",
		Channels:       []string{n.channelID},
		InitialComment: message,
	}

	if _, err := n.client.UploadFile(uploadParams); err != nil {
		n.log.Errorf("error uploading invoice to Slack channel %s: %v", n.channelID, err)
		return
	}
	n.log.Infof("posted invoice %s to Slack channel %s", pdfName, n.channelID)
}
