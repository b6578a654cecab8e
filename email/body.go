package email

import "fmt"

const invoiceSubject = "Your Invoice"

// buildHTMLBody renders the invoice email body with the amount,
// service, and a pay button linking the hosted payment page.
func buildHTMLBody(msg *InvoiceEmail) string {
	return fmt.Sprintf(`
    <div style="font-family: Arial; padding: 20px;">
        <h2>Hello, %s</h2>
        <p>Here is your invoice for: <b>%s</b></p>
        <p><b>Amount:</b> %s %s</p>

        <p>You can complete payment securely using Stripe:</p>

        <a href="%s"
           style="background:#635BFF;color:white;padding:12px 20px;
                  border-radius:6px;text-decoration:none;font-size:16px;">
            Pay Invoice
        </a>

        <p style="margin-top:25px;">PDF invoice is attached.</p>
    </div>`,
		msg.ClientName, msg.Service, msg.Amount, msg.Currency, msg.PaymentURL)
}
