// Package pages renders the static HTML error pages (400, 401, 404, 413, 429, 500).
//
// Pages are rendered into a buffer before anything is written, so a client
// receives either a complete page or nothing.
package pages

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/web-debit/navigate-relay/app/internal/logger"
)

// Page is the content of an error page.
type Page struct {
	Status  int
	Title   string
	Message string
	Details []string
}

// Renderer renders error pages from a parsed template. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the error page template called name from fsys.
func New(fsys fs.FS, name string) (*Renderer, error) {
	tmpl, err := template.ParseFS(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse error page template %s: %w", name, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Respond writes the page with its status code.
//
// If the page template itself fails, a plain text body is sent with the same status.
func (p *Renderer) Respond(w http.ResponseWriter, r *http.Request, page Page) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, page); err != nil {
		logger.ContextRequestLogger(r.Context()).Error("failed to render error page",
			slog.Int("status", page.Status),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(page.Status), page.Status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(page.Status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())
}

// MissingFields is sent when bill_no, bill_name or bill_kana is absent.
func MissingFields(fields []string) Page {
	return Page{
		Status:  http.StatusBadRequest,
		Title:   "必須項目が入力されていません",
		Message: "次の項目が不足しているため、口座振替のお申込みを続けられません。お申込み元のページからやり直してください。",
		Details: fields,
	}
}

// InvalidAccess is sent when data arrives through a source the relay does not accept.
func InvalidAccess() Page {
	return Page{
		Status:  http.StatusBadRequest,
		Title:   "不正なアクセスです",
		Message: "このページへの直接のパラメータ指定はできません。お申込み元のページからアクセスしてください。",
	}
}

// Unauthorized is sent when Basic auth fails.
func Unauthorized() Page {
	return Page{
		Status:  http.StatusUnauthorized,
		Title:   "認証が必要です",
		Message: "このページを表示するには認証が必要です。",
	}
}

// NotFound is sent for unknown routes.
func NotFound() Page {
	return Page{
		Status:  http.StatusNotFound,
		Title:   "ページが見つかりません",
		Message: "お探しのページは存在しないか、移動した可能性があります。",
	}
}

// RequestTooLarge is sent when the request body exceeds the configured limit.
func RequestTooLarge() Page {
	return Page{
		Status:  http.StatusRequestEntityTooLarge,
		Title:   "送信データが大きすぎます",
		Message: "送信されたデータが上限を超えています。",
	}
}

// RateLimited is sent when the rate limit is exceeded.
func RateLimited() Page {
	return Page{
		Status:  http.StatusTooManyRequests,
		Title:   "アクセスが集中しています",
		Message: "しばらく時間をおいてから再度お試しください。",
	}
}

// Internal is sent for every server-side failure. It never carries error details.
func Internal() Page {
	return Page{
		Status:  http.StatusInternalServerError,
		Title:   "エラーが発生しました",
		Message: "システムエラーが発生しました。しばらく時間をおいてから再度お試しください。",
	}
}
