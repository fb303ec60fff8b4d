package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// documentName is the file name diagnostics of uri are reported against:
// the base name of a file URI, or the URI itself for anything else.
func documentName(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil || u.Path == "" {
		return uri
	}
	return filepath.Base(filepath.FromSlash(u.Path))
}
