package relay

import (
	"io/fs"
)

// TemplateSource reads the page template from a file system.
//
// The template is read on every call; nothing is cached, so a TemplateSource
// is safe for concurrent use as long as the underlying fs.FS is.
type TemplateSource struct {
	FS   fs.FS
	Name string
}

// Load returns the template contents or an ErrTemplateRead error.
func (t TemplateSource) Load() (string, error) {
	if t.FS == nil {
		return "", WrapTemplateReadError(fs.ErrInvalid, "no template file system configured")
	}
	b, err := fs.ReadFile(t.FS, t.Name)
	if err != nil {
		return "", WrapTemplateReadError(err, "failed to read template "+t.Name)
	}
	return string(b), nil
}
