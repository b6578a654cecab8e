package payment

import "invoicebot/models"

type PaymentLinkGenerator interface {
	GenerateLink(data *models.PaymentLinkData) (url string, err error)
}
