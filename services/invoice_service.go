package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"invoicebot/logger"
	"invoicebot/models"
)

// InvoiceService renders one-page invoice PDFs. Output is an in-memory
// buffer, never a file: the document is attached to an email and
// discarded, and writing client-named files to disk would both leak
// space and race between concurrent requests for the same client.
type InvoiceService struct {
	log *logger.Logger
}

func NewInvoiceService(log *logger.Logger) *InvoiceService {
	return &InvoiceService{log: log}
}

// invoiceLines is the fixed body layout of the invoice, below the
// title heading.
func invoiceLines(inv *models.InvoiceRequest) []string {
	return []string{
		fmt.Sprintf("Client: %s", inv.Client),
		fmt.Sprintf("Service: %s", inv.Service),
		fmt.Sprintf("Amount: %s %s", inv.Amount, inv.Currency),
		fmt.Sprintf("Date: %s", inv.Date),
	}
}

// documentName derives the attachment filename from the client name,
// with a per-request suffix so two invoices for the same client never
// share an identifier.
func documentName(client string) string {
	base := strings.ReplaceAll(client, " ", "_")
	return fmt.Sprintf("invoice_%s_%s.pdf", base, uuid.NewString()[:8])
}

// RenderInvoicePDF produces the invoice document and its filename.
func (is *InvoiceService) RenderInvoicePDF(inv *models.InvoiceRequest) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(18)

	pdf.SetFont("Arial", "", 12)
	for _, line := range invoiceLines(inv) {
		pdf.Cell(0, 6, line)
		pdf.Ln(8)
	}

	pdf.Ln(8)
	pdf.Cell(0, 6, "Thank you for your business!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", &models.RenderError{Err: err}
	}

	name := documentName(inv.Client)
	is.log.Infof("rendered invoice %s (%d bytes)", name, buf.Len())
	return buf.Bytes(), name, nil
}
