package relay

import "fmt"

// Mode selects the input acquisition policy.
type Mode string

const (
	// ModeHardened accepts data only via POST, rejects GET requests carrying query
	// parameters and takes only the five customer-facing billing fields from the client.
	ModeHardened Mode = "hardened"

	// ModePermissive accepts either a query string or a POST body and all seven billing fields.
	ModePermissive Mode = "permissive"
)

// ParseMode converts a configuration value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHardened, ModePermissive:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown relay mode %q (use %s or %s)", s, ModeHardened, ModePermissive)
}
