package webhook

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicebot/logger"
	"invoicebot/models"
)

var testLog, _ = logger.NewLogger()

func wantFields() models.FieldMap {
	return models.FieldMap{
		"client":   "Jane Doe",
		"service":  "Design",
		"amount":   "250",
		"currency": "USD",
		"date":     "2024-01-01",
		"email":    "jane@example.com",
	}
}

// The same logical data must normalize identically regardless of which
// wire shape the calling platform used.
func TestNormalizeEquivalentEncodings(t *testing.T) {
	n := NewNormalizer(testLog)

	plainJSON := &RawRequest{Body: []byte(`{
		"client": "Jane Doe", "service": "Design", "amount": "250",
		"currency": "USD", "date": "2024-01-01", "email": "jane@example.com"
	}`)}

	wrappedJSON := &RawRequest{Body: []byte(`{"data": {
		"client": "Jane Doe", "service": "Design", "amount": "250",
		"currency": "USD", "date": "2024-01-01", "email": "jane@example.com"
	}}`)}

	vendorEnvelope := &RawRequest{Body: []byte(`{"payload": {"data": {
		"data[client]": "Jane Doe", "data[service]": "Design",
		"data[amount]": "250", "data[currency]": "USD",
		"data[date]": "2024-01-01", "data[email]": "jane@example.com",
		"form_id": "77", "submitted_at": "now"
	}}}`)}

	formEncoded := &RawRequest{Form: url.Values{
		"data[client]":   {"Jane Doe"},
		"data[service]":  {"Design"},
		"data[amount]":   {"250"},
		"data[currency]": {"USD"},
		"data[date]":     {"2024-01-01"},
		"data[email]":    {"jane@example.com"},
	}}

	for name, req := range map[string]*RawRequest{
		"plain_json":      plainJSON,
		"wrapped_json":    wrappedJSON,
		"vendor_envelope": vendorEnvelope,
		"form_encoded":    formEncoded,
	} {
		assert.Equal(t, wantFields(), n.Normalize(req), "encoding %s", name)
	}
}

func TestNormalizeVendorEnvelopeIgnoresUnbracketedKeys(t *testing.T) {
	n := NewNormalizer(testLog)
	fields := n.Normalize(&RawRequest{
		Body: []byte(`{"payload": {"data": {"data[client]": "Jane", "client": "Spoof", "form_id": "9"}}}`),
	})
	assert.Equal(t, models.FieldMap{"client": "Jane"}, fields)
}

func TestNormalizePlainJSONNumbersKeepTheirDigits(t *testing.T) {
	n := NewNormalizer(testLog)
	fields := n.Normalize(&RawRequest{
		Body: []byte(`{"client": "Jane", "amount": 1250000.5}`),
	})
	assert.Equal(t, "1250000.5", fields["amount"])
}

func TestNormalizeFormBracketedKeysWinConflicts(t *testing.T) {
	n := NewNormalizer(testLog)
	fields := n.Normalize(&RawRequest{Form: url.Values{
		"client":       {"Plain"},
		"data[client]": {"Bracketed"},
		"service":      {"Design"},
	}})
	assert.Equal(t, "Bracketed", fields["client"])
	assert.Equal(t, "Design", fields["service"])
}

func TestNormalizeRawFallback(t *testing.T) {
	n := NewNormalizer(testLog)
	fields := n.Normalize(&RawRequest{
		Body: []byte(`data[client]=Jane+Doe&data[email]=jane@example.com`),
	})
	assert.Equal(t, models.FieldMap{
		"client": "Jane Doe",
		"email":  "jane@example.com",
	}, fields)
}

func TestNormalizeRawFallbackSplitsOnFirstEquals(t *testing.T) {
	n := NewNormalizer(testLog)
	fields := n.Normalize(&RawRequest{
		Body: []byte(`note=a=b&client=Jane`),
	})
	assert.Equal(t, "a=b", fields["note"])
	assert.Equal(t, "Jane", fields["client"])
}

func TestNormalizeEmptyBody(t *testing.T) {
	n := NewNormalizer(testLog)
	fields := n.Normalize(&RawRequest{Body: nil})
	assert.NotNil(t, fields)
	assert.Empty(t, fields)
}
