// Package web holds the HTML page template, error pages and static assets
// compiled into the binary.
package web

import "embed"

// PageTemplate is the name of the navigate page inside FS.
const PageTemplate = "web_debit_navigate_page.html"

// ErrorTemplate is the html/template used for every error page.
const ErrorTemplate = "pages/error.html"

//go:embed web_debit_navigate_page.html pages static
var FS embed.FS
