package relay

import (
	"encoding/json"
	"log/slog"
)

const redacted = "[REDACTED]"

// MerchantCredentials holds the server-side secrets needed by the payment gateway.
//
// The values are fixed when the struct is created at startup. They are only
// ever written into attribute values of the hidden gateway form; String,
// LogValue and MarshalJSON all redact them so they cannot leak through logs,
// debug output or JSON responses.
type MerchantCredentials struct {
	shopPassword  string
	sessionToken  string
	adminPassword string
}

// NewMerchantCredentials creates the credential set. Callers are expected to
// have checked that shopPassword and sessionToken are set (see config.validateConfig).
func NewMerchantCredentials(shopPassword, sessionToken, adminPassword string) MerchantCredentials {
	return MerchantCredentials{
		shopPassword:  shopPassword,
		sessionToken:  sessionToken,
		adminPassword: adminPassword,
	}
}

// ShopPassword is the gateway shop password (shop_pwd field).
func (c MerchantCredentials) ShopPassword() string { return c.shopPassword }

// SessionToken is the gateway session token (fs field).
func (c MerchantCredentials) SessionToken() string { return c.sessionToken }

// AdminPassword protects the relay page with Basic auth when enabled. It is never sent to the gateway.
func (c MerchantCredentials) AdminPassword() string { return c.adminPassword }

// Complete reports whether both gateway secrets are present.
func (c MerchantCredentials) Complete() bool {
	return c.shopPassword != "" && c.sessionToken != ""
}

func (c MerchantCredentials) String() string { return redacted }

func (c MerchantCredentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("shop_pwd_set", c.shopPassword != ""),
		slog.Bool("fs_token_set", c.sessionToken != ""),
		slog.Bool("admin_password_set", c.adminPassword != ""),
	)
}

func (c MerchantCredentials) MarshalJSON() ([]byte, error) {
	return json.Marshal(redacted)
}
