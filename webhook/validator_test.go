package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicebot/models"
)

func TestValidateComplete(t *testing.T) {
	assert.NoError(t, Validate(models.FieldMap{
		"client":   "Jane Doe",
		"service":  "Design",
		"amount":   "250",
		"currency": "USD",
		"email":    "jane@example.com",
	}))
}

func TestValidateDateIsOptional(t *testing.T) {
	fields := models.FieldMap{
		"client":   "Jane Doe",
		"service":  "Design",
		"amount":   "250",
		"currency": "USD",
		"email":    "jane@example.com",
	}
	assert.NoError(t, Validate(fields))
	fields["date"] = ""
	assert.NoError(t, Validate(fields))
}

func TestValidateMissingAndEmptyFields(t *testing.T) {
	err := Validate(models.FieldMap{
		"client":   "Jane Doe",
		"service":  "", // present but empty counts as missing
		"currency": "USD",
	})
	require.Error(t, err)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"amount", "email", "service"}, verr.Missing)
}

func TestValidateEmptyMap(t *testing.T) {
	err := Validate(models.FieldMap{})
	require.Error(t, err)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"amount", "client", "currency", "email", "service"}, verr.Missing)
}
