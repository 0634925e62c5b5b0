package quiz

import (
	"path/filepath"
	"strings"
)

// ResolveTitle picks the display title for an uploaded document.
// An explicit title wins; otherwise the file name without its .pdf
// extension is used, falling back to UntitledTitle.
func ResolveTitle(title, fileName string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	base := filepath.Base(strings.TrimSpace(fileName))
	if base == "." || base == "/" {
		return UntitledTitle
	}
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".pdf") {
		base = strings.TrimSuffix(base, ext)
	}
	if strings.TrimSpace(base) == "" {
		return UntitledTitle
	}
	return base
}
