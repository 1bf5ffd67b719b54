package relay

import (
	"html"
	"regexp"
	"strings"
)

// FormID is the id of both the placeholder element in the page template and
// the hidden form that replaces it.
const FormID = "web-debit-form"

// SubmitID is the id of the submit control inside the hidden form.
const SubmitID = "web-debit-submit"

// Placeholder is the empty element the page template must contain.
const Placeholder = `<div id="` + FormID + `"></div>`

var placeholderPattern = regexp.MustCompile(`<div\s+id="` + FormID + `"\s*>\s*</div>`)

// confirmScript enables the submit control once the required fields are
// present in the rendered form. It reads the values back from the DOM and
// must never reference the credential fields.
const confirmScript = `<script>
(function () {
  var form = document.getElementById('` + FormID + `');
  if (!form) { return; }
  var required = ['` + FieldBillNo + `', '` + FieldBillName + `', '` + FieldBillKana + `'];
  var ready = required.every(function (name) {
    var el = form.elements.namedItem(name);
    return el !== null && el.value.trim() !== '';
  });
  var submit = document.getElementById('` + SubmitID + `');
  if (submit) { submit.disabled = !ready; }
  if (window.history && window.history.replaceState && window.location.search) {
    window.history.replaceState(null, '', window.location.pathname);
  }
})();
</script>
`

// HasPlaceholder reports whether tmpl contains the form placeholder.
func HasPlaceholder(tmpl string) bool {
	return placeholderPattern.MatchString(tmpl)
}

// Render returns the page template with the placeholder replaced by the hidden
// gateway form and the confirmation script inserted before </body>.
//
// Render is a pure function: it performs no I/O and either returns the complete
// page or an error (ErrPlaceholderNotFound), never a partial document.
func Render(tmpl string, s SanitizedSubmission, creds MerchantCredentials, gw Gateway, orderNo string) (string, error) {
	loc := placeholderPattern.FindStringIndex(tmpl)
	if loc == nil {
		return "", NewRenderError("template does not contain " + Placeholder)
	}

	var b strings.Builder
	b.Grow(len(tmpl) + 4096)
	b.WriteString(tmpl[:loc[0]])
	writeForm(&b, FormFields(s, creds, gw, orderNo), gw.URL)
	rest := tmpl[loc[1]:]

	if i := closingBodyIndex(rest); i >= 0 {
		b.WriteString(rest[:i])
		b.WriteString(confirmScript)
		b.WriteString(rest[i:])
	} else {
		b.WriteString(rest)
		b.WriteString(confirmScript)
	}
	return b.String(), nil
}

func writeForm(b *strings.Builder, fields []FormField, action string) {
	b.WriteString(`<form id="` + FormID + `" action="`)
	b.WriteString(html.EscapeString(action))
	b.WriteString(`" method="post" accept-charset="` + GatewayCharset + `">` + "\n")
	for _, f := range fields {
		b.WriteString(`<input type="hidden" name="`)
		b.WriteString(f.Name)
		b.WriteString(`" value="`)
		b.WriteString(attrValue(f))
		b.WriteString(`">` + "\n")
	}
	b.WriteString(`<button type="submit" id="` + SubmitID + `" disabled>口座振替の登録へ進む</button>` + "\n")
	b.WriteString(`</form>`)
}

// attrValue escapes a value for a double-quoted attribute. Billing values are
// already sanitized; protocol constants and secrets are escaped losslessly so
// the browser posts them byte for byte.
func attrValue(f FormField) string {
	if isBillingField(f.Name) {
		return f.Value
	}
	return html.EscapeString(f.Value)
}

func isBillingField(name string) bool {
	for _, f := range billingFields {
		if f == name {
			return true
		}
	}
	return false
}

func closingBodyIndex(s string) int {
	return max(strings.LastIndex(s, "</body>"), strings.LastIndex(s, "</BODY>"))
}
