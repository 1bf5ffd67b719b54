package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/web-debit/navigate-relay/app/internal/config"
	"github.com/web-debit/navigate-relay/app/internal/logger"
	"github.com/web-debit/navigate-relay/app/internal/relay"
	"github.com/web-debit/navigate-relay/app/internal/version"
)

var (
	cfg       *config.ServerEnvironment
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "relay-cli",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Web-debit navigate relay tools",
	Long:              `Offline tools for the navigate relay: render a page from a submission, preview the gateway payload and check the configuration`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewServerConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}

		// diagnostics go to stderr so command output can be piped
		appLogger = logger.NewLogger(cmd.ErrOrStderr(), logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
		return nil
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(payloadCmd)
	rootCmd.AddCommand(checkConfigCmd)
}

// readSubmission decodes a JSON object of billing fields from path ("-" reads stdin).
func readSubmission(cmd *cobra.Command, path string) (relay.BillingSubmission, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return relay.BillingSubmission{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var m map[string]any
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return relay.BillingSubmission{}, relay.WrapMalformedRequestError(err, "input must be a JSON object")
	}
	return relay.SubmissionFromMap(m), nil
}
