package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/web-debit/navigate-relay/app/internal/relay"
	"github.com/web-debit/navigate-relay/app/web"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the navigate page for a submission",
	Long: `Validate a billing submission and print the page the server would return for it.

The submission is a JSON object keyed by the billing field names.

Example:
  echo '{"bill_no":"123","bill_name":"田中","bill_kana":"タナカ"}' | relay-cli render --input -`,
	RunE: runRender,
}

var (
	renderInput    string
	renderTemplate string
)

func init() {
	renderCmd.Flags().StringVar(&renderInput, "input", "-", "JSON submission file (- for stdin)")
	renderCmd.Flags().StringVar(&renderTemplate, "template", "", "page template (defaults to TEMPLATE_PATH, then the embedded page)")
}

func runRender(cmd *cobra.Command, args []string) error {
	submission, err := readSubmission(cmd, renderInput)
	if err != nil {
		return err
	}
	if err := relay.Validate(submission); err != nil {
		return err
	}

	tmpl, err := templateSource(renderTemplate).Load()
	if err != nil {
		return err
	}

	sanitized := relay.SanitizeSubmission(submission)
	if err := relay.CheckEncodable(sanitized); err != nil {
		appLogger.Warn("submission will not survive Shift_JIS conversion", slog.String("error", err.Error()))
	}

	gw := cfg.Gateway()
	page, err := relay.Render(tmpl, sanitized, cfg.Credentials(), gw, gw.OrderNumber())
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write([]byte(page))
	return err
}

func templateSource(path string) relay.TemplateSource {
	if path == "" {
		path = cfg.TemplatePath
	}
	if path == "" {
		return relay.TemplateSource{FS: web.FS, Name: web.PageTemplate}
	}
	return relay.TemplateSource{FS: os.DirFS(filepath.Dir(path)), Name: filepath.Base(path)}
}
