package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/web-debit/navigate-relay/app/internal/relay"
)

const redactedValue = "REDACTED"

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Print the gateway request body for a submission",
	Long: `Print the Shift_JIS, form-urlencoded body a browser posts to the gateway when the
rendered form is submitted.

Credential fields are replaced with REDACTED unless --show-secrets is given.`,
	RunE: runPayload,
}

var (
	payloadInput string
	showSecrets  bool
)

func init() {
	payloadCmd.Flags().StringVar(&payloadInput, "input", "-", "JSON submission file (- for stdin)")
	payloadCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "include merchant credentials in the output")
}

func runPayload(cmd *cobra.Command, args []string) error {
	submission, err := readSubmission(cmd, payloadInput)
	if err != nil {
		return err
	}
	if err := relay.Validate(submission); err != nil {
		return err
	}

	gw := cfg.Gateway()
	fields := relay.FormFields(relay.SanitizeSubmission(submission), cfg.Credentials(), gw, gw.OrderNumber())
	if !showSecrets {
		for i := range fields {
			if fields[i].IsCredential() {
				fields[i].Value = redactedValue
			}
		}
	}

	body, err := relay.EncodeGatewayPayload(fields)
	if err != nil {
		return err
	}

	appLogger.Debug("gateway payload encoded",
		slog.Int("fields", len(fields)),
		slog.Int("bytes", len(body)),
		slog.Bool("secrets_shown", showSecrets))

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "POST %s\nContent-Type: application/x-www-form-urlencoded; charset=%s\n\n%s\n",
		gw.URL, relay.GatewayCharset, body)
	return err
}
