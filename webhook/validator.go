package webhook

import (
	"sort"

	"invoicebot/models"
)

// requiredFields must be present and non-empty after normalization.
// "date" is intentionally absent: it is optional and defaults to empty.
var requiredFields = []string{"client", "service", "amount", "currency", "email"}

// Validate checks the normalized field map for required invoice fields.
// Returns a *models.ValidationError listing the missing or empty field
// names (sorted), or nil when the map is complete.
func Validate(fields models.FieldMap) error {
	var missing []string
	for _, name := range requiredFields {
		if fields[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &models.ValidationError{Missing: missing}
	}
	return nil
}
