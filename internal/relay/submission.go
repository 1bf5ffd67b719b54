package relay

import (
	"mime"
	"net/http"
	"net/url"
)

// wire names of the billing fields posted by the customer's browser
const (
	FieldBillNo      = "bill_no"
	FieldBillName    = "bill_name"
	FieldBillKana    = "bill_kana"
	FieldBillZip     = "bill_zip"
	FieldBillAddress = "bill_adr_1"
	FieldBillPhone   = "bill_phon"
	FieldBillMail    = "bill_mail"
)

// RequiredFields are the fields a submission cannot be relayed without.
var RequiredFields = []string{FieldBillNo, FieldBillName, FieldBillKana}

// hardenedFields is the subset of billing fields hardened mode accepts from the client.
var hardenedFields = map[string]bool{
	FieldBillNo:   true,
	FieldBillName: true,
	FieldBillKana: true,
	FieldBillZip:  true,
	FieldBillMail: true,
}

// BillingSubmission is the per-request record of customer billing fields.
// Values are untrusted until passed through SanitizeSubmission.
type BillingSubmission struct {
	BillNo      string `json:"bill_no"`
	BillName    string `json:"bill_name"`
	BillKana    string `json:"bill_kana"`
	BillZip     string `json:"bill_zip"`
	BillAddress string `json:"bill_adr_1"`
	BillPhone   string `json:"bill_phon"`
	BillMail    string `json:"bill_mail"`
}

// Get returns the value of the field with the given wire name.
func (s BillingSubmission) Get(field string) string {
	switch field {
	case FieldBillNo:
		return s.BillNo
	case FieldBillName:
		return s.BillName
	case FieldBillKana:
		return s.BillKana
	case FieldBillZip:
		return s.BillZip
	case FieldBillAddress:
		return s.BillAddress
	case FieldBillPhone:
		return s.BillPhone
	case FieldBillMail:
		return s.BillMail
	}
	return ""
}

// set assigns the value of the field with the given wire name. Unknown names are ignored.
func (s *BillingSubmission) set(field, value string) {
	switch field {
	case FieldBillNo:
		s.BillNo = value
	case FieldBillName:
		s.BillName = value
	case FieldBillKana:
		s.BillKana = value
	case FieldBillZip:
		s.BillZip = value
	case FieldBillAddress:
		s.BillAddress = value
	case FieldBillPhone:
		s.BillPhone = value
	case FieldBillMail:
		s.BillMail = value
	}
}

// billingFields lists the wire names in protocol order.
var billingFields = []string{
	FieldBillNo,
	FieldBillName,
	FieldBillKana,
	FieldBillZip,
	FieldBillAddress,
	FieldBillPhone,
	FieldBillMail,
}

// SubmissionFromMap builds a submission from decoded JSON or any other
// loosely typed map. Non-string values become empty strings.
func SubmissionFromMap(m map[string]any) BillingSubmission {
	var s BillingSubmission
	for _, f := range billingFields {
		s.set(f, stringValue(m[f]))
	}
	return s
}

// Source reports where a submission was read from.
type Source string

const (
	// SourceNone is used for a plain GET / without parameters
	SourceNone  Source = "none"
	SourceQuery Source = "query"
	SourceBody  Source = "body"
)

// AcquireSubmission reads a billing submission candidate from the request.
//
// Data is taken from exactly one source:
//   - GET without query parameters yields SourceNone and an empty submission
//   - GET with query parameters is rejected in hardened mode and read in permissive mode
//   - POST reads the form body; a POST that also carries a query string is rejected
//
// In hardened mode only bill_no, bill_name, bill_kana, bill_zip and bill_mail are taken from the client.
// Merchant secrets posted by the client (shop_pwd, fs_token) are never read.
func AcquireSubmission(r *http.Request, mode Mode) (BillingSubmission, Source, error) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if r.URL.RawQuery == "" {
			return BillingSubmission{}, SourceNone, nil
		}
		if mode == ModeHardened {
			return BillingSubmission{}, SourceQuery, NewInvalidAccessError("query parameters are not accepted in hardened mode")
		}
		return fromValues(r.URL.Query(), mode), SourceQuery, nil

	case http.MethodPost:
		if r.URL.RawQuery != "" {
			return BillingSubmission{}, SourceBody, NewInvalidAccessError("request carries both query parameters and a body")
		}
		multipart := false
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mt, _, err := mime.ParseMediaType(ct)
			if err != nil {
				return BillingSubmission{}, SourceBody, WrapMalformedRequestError(err, "invalid content type")
			}
			switch mt {
			case "application/x-www-form-urlencoded":
			case "multipart/form-data":
				multipart = true
			default:
				return BillingSubmission{}, SourceBody, NewInvalidAccessError("unsupported content type " + mt)
			}
		}
		var err error
		if multipart {
			err = r.ParseMultipartForm(maxMultipartMemory)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return BillingSubmission{}, SourceBody, WrapMalformedRequestError(err, "failed to parse form body")
		}
		return fromValues(r.PostForm, mode), SourceBody, nil
	}

	return BillingSubmission{}, SourceNone, NewInvalidAccessError("method " + r.Method + " not supported")
}

const maxMultipartMemory = 32 << 10

func fromValues(v url.Values, mode Mode) BillingSubmission {
	var s BillingSubmission
	for _, f := range billingFields {
		if mode == ModeHardened && !hardenedFields[f] {
			continue
		}
		s.set(f, v.Get(f))
	}
	return s
}
