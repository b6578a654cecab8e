package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"invoicebot/email"
	"invoicebot/logger"
	"invoicebot/models"
	"invoicebot/payment"
	"invoicebot/utils"
	"invoicebot/webhook"
)

const maxBodyBytes = int64(65536)

// outboundTimeout bounds the external collaborator calls so a wedged
// provider cannot hold a request forever.
const outboundTimeout = 30 * time.Second

// InvoiceRenderer produces the invoice document and its filename.
type InvoiceRenderer interface {
	RenderInvoicePDF(inv *models.InvoiceRequest) (pdf []byte, name string, err error)
}

// OpsNotifier is told about successfully dispatched invoices.
// Implementations must be best-effort and non-blocking for the caller's
// error handling: the HTTP response never depends on them.
type OpsNotifier interface {
	InvoiceIssued(inv *models.InvoiceRequest, pdfName string, pdf []byte, paymentURL string)
}

// InvoiceHandler handles POST /new_invoice: normalize the body,
// validate, render the PDF, create the payment link, email the invoice.
// Stages run strictly in order and the first failure short-circuits
// with a stage-specific response. Side effects of earlier stages are
// not rolled back when a later stage fails.
type InvoiceHandler struct {
	normalizer *webhook.Normalizer
	renderer   InvoiceRenderer
	payments   payment.PaymentLinkGenerator
	emails     email.InvoiceEmailSender
	notifier   OpsNotifier
	log        *logger.Logger
}

func NewInvoiceHandler(
	normalizer *webhook.Normalizer,
	renderer InvoiceRenderer,
	payments payment.PaymentLinkGenerator,
	emails email.InvoiceEmailSender,
	notifier OpsNotifier,
	log *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		normalizer: normalizer,
		renderer:   renderer,
		payments:   payments,
		emails:     emails,
		notifier:   notifier,
		log:        log,
	}
}

// HandleNewInvoice processes an inbound invoice webhook.
func (h *InvoiceHandler) HandleNewInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Errorf("error reading request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	raw := &webhook.RawRequest{
		Headers: r.Header,
		Body:    payload,
		Form:    formView(r, payload),
	}
	fields := h.normalizer.Normalize(raw)

	if err := webhook.Validate(fields); err != nil {
		h.log.Infof("rejected invoice request: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "missing fields",
			"received": fields,
		})
		return
	}
	inv := models.InvoiceRequestFromFields(fields)
	h.log.Infof("new invoice request: client=%s service=%s amount=%s %s", inv.Client, inv.Service, inv.Amount, inv.Currency)

	pdf, pdfName, err := h.renderer.RenderInvoicePDF(inv)
	if err != nil {
		h.log.Errorf("render error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "render_failed",
		})
		return
	}

	paymentURL, err := h.createPaymentLink(inv)
	if err != nil {
		h.log.Errorf("payment link error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "stripe_failed",
			"details": err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), outboundTimeout)
	defer cancel()
	sendErr := h.emails.SendInvoiceEmail(ctx, &email.InvoiceEmail{
		To:         inv.Email,
		ClientName: inv.Client,
		Service:    inv.Service,
		Amount:     inv.Amount,
		Currency:   inv.Currency,
		PaymentURL: paymentURL,
		PDFName:    pdfName,
		PDF:        pdf,
	})
	if sendErr != nil {
		// The PDF and payment link already exist at this point; that
		// inconsistency is accepted, the caller just gets the error.
		h.log.Errorf("email error: %v", sendErr)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "email_failed",
		})
		return
	}

	h.notifier.InvoiceIssued(inv, pdfName, pdf, paymentURL)

	h.log.Infof("invoice %s dispatched to %s", pdfName, inv.Email)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"client":     inv.Client,
		"pdf":        pdfName,
		"stripe_url": paymentURL,
		"fields":     fields,
	})
}

// createPaymentLink converts the amount to minor currency units and
// asks the provider for a hosted link. A malformed amount surfaces the
// same way as a provider failure; the caller sees stripe_failed with
// the cause in details.
func (h *InvoiceHandler) createPaymentLink(inv *models.InvoiceRequest) (string, error) {
	amountMinor, err := utils.ToMinorUnits(inv.Amount)
	if err != nil {
		return "", &models.PaymentLinkError{Err: err}
	}
	return h.payments.GenerateLink(&models.PaymentLinkData{
		AmountMinor: amountMinor,
		Currency:    inv.Currency,
		Description: inv.Service,
	})
}

// formView returns the best-effort parsed form fields of the request.
// Only bodies declared as form data get a form view; everything else
// is handled by the JSON strategies or the raw fallback, which inspect
// the content instead of trusting the header.
func formView(r *http.Request, payload []byte) url.Values {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil
	}
	switch mediaType {
	case "application/x-www-form-urlencoded":
		form, err := url.ParseQuery(string(payload))
		if err != nil {
			return nil
		}
		return form
	case "multipart/form-data":
		r.Body = io.NopCloser(bytes.NewReader(payload))
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil
		}
		return r.PostForm
	}
	return nil
}

// writeJSON sends a JSON response in the shape the calling integration
// expects.
func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.L.Errorf("error encoding response: %v", err)
	}
}
