package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/web-debit/navigate-relay/app/internal/relay"
)

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate the relay configuration",
	Long:  `Load the configuration from the environment, check that the page template is readable and print a redacted summary`,
	Args:  cobra.NoArgs,
	RunE:  runCheckConfig,
}

type configSummary struct {
	Environment    string                    `json:"environment"`
	Mode           relay.Mode                `json:"mode"`
	Template       string                    `json:"template"`
	GatewayURL     string                    `json:"gateway_url"`
	AuthEnabled    bool                      `json:"auth_enabled"`
	MaxRequestSize int64                     `json:"max_request_size"`
	Credentials    relay.MerchantCredentials `json:"credentials"`
}

func runCheckConfig(cmd *cobra.Command, args []string) error {
	src := templateSource("")
	tmpl, err := src.Load()
	if err != nil {
		return err
	}
	if !relay.HasPlaceholder(tmpl) {
		return relay.NewRenderError("page template " + src.Name + " has no form placeholder")
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(configSummary{
		Environment:    cfg.Environment,
		Mode:           cfg.Mode(),
		Template:       src.Name,
		GatewayURL:     cfg.GatewayURL,
		AuthEnabled:    cfg.EnableAuth,
		MaxRequestSize: cfg.MaxRequestSize,
		Credentials:    cfg.Credentials(),
	})
}
