package constants

import "strings"

// Source document forms.
const (
	PDF  = "PDF"
	PPTX = "PPTX"
)

// AllowedExtensions holds the extensions the batch driver picks up.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"pptx": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns PDF, PPTX or "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "pptx":
		return PPTX
	default:
		return ""
	}
}
