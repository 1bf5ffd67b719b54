package relay

import "strings"

// Validate checks that bill_no, bill_name and bill_kana are present and not blank
// once surrounding whitespace is trimmed.
//
// It returns nil or a *MissingFieldsError listing the missing wire names in protocol order.
func Validate(s BillingSubmission) error {
	var missing []string
	for _, f := range RequiredFields {
		if strings.TrimSpace(s.Get(f)) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
