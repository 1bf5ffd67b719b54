package relay

import (
	"strings"
)

// htmlEscaper replaces the characters that can open or close markup, attributes or
// closing tags. '&' is left alone so already-escaped text is not escaped twice.
var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Sanitize escapes <, >, ", ' and / as HTML entities and trims surrounding
// whitespace. It is idempotent: Sanitize(Sanitize(v)) == Sanitize(v).
func Sanitize(v string) string {
	return strings.TrimSpace(htmlEscaper.Replace(v))
}

// SanitizeValue is Sanitize for loosely typed input; non-string values map to "".
func SanitizeValue(v any) string {
	return Sanitize(stringValue(v))
}

func stringValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// SanitizedSubmission is a BillingSubmission whose every field has been sanitized.
// It can only be produced by SanitizeSubmission.
type SanitizedSubmission struct {
	fields BillingSubmission
}

// SanitizeSubmission applies Sanitize to every field of s.
func SanitizeSubmission(s BillingSubmission) SanitizedSubmission {
	return SanitizedSubmission{fields: BillingSubmission{
		BillNo:      Sanitize(s.BillNo),
		BillName:    Sanitize(s.BillName),
		BillKana:    Sanitize(s.BillKana),
		BillZip:     Sanitize(s.BillZip),
		BillAddress: Sanitize(s.BillAddress),
		BillPhone:   Sanitize(s.BillPhone),
		BillMail:    Sanitize(s.BillMail),
	}}
}

// Get returns the sanitized value of the field with the given wire name.
func (s SanitizedSubmission) Get(field string) string {
	return s.fields.Get(field)
}

// Fields returns a copy of the sanitized values.
func (s SanitizedSubmission) Fields() BillingSubmission {
	return s.fields
}
