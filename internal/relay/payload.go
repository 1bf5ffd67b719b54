package relay

import (
	"html"
	"net/url"
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// EncodeGatewayPayload returns the application/x-www-form-urlencoded body a
// browser submits for the hidden form: attribute values are entity-decoded,
// converted to Shift_JIS and percent-encoded, in protocol field order.
//
// A value with characters outside Shift_JIS fails with ErrUnencodable.
func EncodeGatewayPayload(fields []FormField) ([]byte, error) {
	enc := japanese.ShiftJIS.NewEncoder()
	var b strings.Builder
	for i, f := range fields {
		v, err := enc.String(html.UnescapeString(attrValue(f)))
		if err != nil {
			return nil, WrapUnencodableError(err, "field "+f.Name)
		}
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return []byte(b.String()), nil
}

// CheckEncodable reports the billing fields of s that cannot be represented in
// the gateway charset. It returns nil when every field survives conversion.
func CheckEncodable(s SanitizedSubmission) error {
	enc := japanese.ShiftJIS.NewEncoder()
	var bad []string
	for _, f := range billingFields {
		if _, err := enc.String(html.UnescapeString(s.Get(f))); err != nil {
			bad = append(bad, f)
		}
	}
	if len(bad) > 0 {
		return WrapUnencodableError(ErrUnencodable, "fields "+strings.Join(bad, ", "))
	}
	return nil
}
