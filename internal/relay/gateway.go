package relay

import (
	"strings"

	"github.com/google/uuid"
)

// GatewayCharset is the legacy encoding the gateway expects form posts in.
const GatewayCharset = "Shift_JIS"

// wire names of the gateway protocol fields
const (
	FieldVersion          = "version"
	FieldShopCode         = "shop_cd"
	FieldCollectionCode   = "syuno_co_cd"
	FieldShopOrderNo      = "shoporder_no"
	FieldShopPassword     = "shop_pwd"
	FieldUpdateKind       = "koushin_kbn"
	FieldBillMailKind     = "bill_mail_kbn"
	FieldRedirectKind     = "redirect_kbn"
	FieldRedirectSeconds  = "redirect_sec"
	FieldShopPhoneDisplay = "shop_phon_hyoji_kbn"
	FieldShopMailDisplay  = "shop_mail_hyoji_kbn"
	FieldBillMethod       = "bill_method"
	FieldPaymentID        = "kessai_id"
	FieldSessionToken     = "fs"
	FieldShopLink         = "shop_link"
	FieldShopErrorLink    = "shop_error_link"
	FieldShopResultLink   = "shop_res_link"
)

// credentialFields are the form fields whose values come from MerchantCredentials.
var credentialFields = map[string]bool{
	FieldShopPassword: true,
	FieldSessionToken: true,
}

// Gateway holds the fixed protocol constants of the web-debit gateway.
// None of these values are secret.
type Gateway struct {
	URL              string `json:"url"`
	Version          string `json:"version"`
	ShopCode         string `json:"shop_cd"`
	CollectionCode   string `json:"syuno_co_cd"`
	UpdateKind       string `json:"koushin_kbn"`
	BillMailKind     string `json:"bill_mail_kbn"`
	RedirectKind     string `json:"redirect_kbn"`
	RedirectSeconds  string `json:"redirect_sec"`
	ShopPhoneDisplay string `json:"shop_phon_hyoji_kbn"`
	ShopMailDisplay  string `json:"shop_mail_hyoji_kbn"`
	BillMethod       string `json:"bill_method"`
	PaymentID        string `json:"kessai_id"`
	ShopLink         string `json:"shop_link"`
	ShopErrorLink    string `json:"shop_error_link"`
	ShopResultLink   string `json:"shop_res_link"`
	FixedOrderNo     string `json:"shoporder_no,omitempty"`
}

// FormField is a single name/value pair of the outbound gateway form.
type FormField struct {
	Name  string
	Value string
}

// IsCredential reports whether the field carries a merchant secret.
func (f FormField) IsCredential() bool {
	return credentialFields[f.Name]
}

// FormFields returns the outbound form fields in protocol order.
//
// Billing values come from the sanitized submission. Merchant secrets always
// come from creds, never from the client.
func FormFields(s SanitizedSubmission, creds MerchantCredentials, gw Gateway, orderNo string) []FormField {
	return []FormField{
		{FieldVersion, gw.Version},
		{FieldShopCode, gw.ShopCode},
		{FieldCollectionCode, gw.CollectionCode},
		{FieldShopOrderNo, orderNo},
		{FieldShopPassword, creds.ShopPassword()},
		{FieldUpdateKind, gw.UpdateKind},
		{FieldBillNo, s.Get(FieldBillNo)},
		{FieldBillName, s.Get(FieldBillName)},
		{FieldBillKana, s.Get(FieldBillKana)},
		{FieldBillZip, s.Get(FieldBillZip)},
		{FieldBillAddress, s.Get(FieldBillAddress)},
		{FieldBillPhone, s.Get(FieldBillPhone)},
		{FieldBillMail, s.Get(FieldBillMail)},
		{FieldBillMailKind, gw.BillMailKind},
		{FieldRedirectKind, gw.RedirectKind},
		{FieldRedirectSeconds, gw.RedirectSeconds},
		{FieldShopPhoneDisplay, gw.ShopPhoneDisplay},
		{FieldShopMailDisplay, gw.ShopMailDisplay},
		{FieldBillMethod, gw.BillMethod},
		{FieldPaymentID, gw.PaymentID},
		{FieldSessionToken, creds.SessionToken()},
		{FieldShopLink, gw.ShopLink},
		{FieldShopErrorLink, gw.ShopErrorLink},
		{FieldShopResultLink, gw.ShopResultLink},
	}
}

// OrderNumber returns the shoporder_no for a new form: the configured fixed
// number when set, otherwise a fresh one.
func (gw Gateway) OrderNumber() string {
	if gw.FixedOrderNo != "" {
		return gw.FixedOrderNo
	}
	return NewOrderNumber()
}

// NewOrderNumber generates a 20 character alphanumeric shop order number.
func NewOrderNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:20])
}
