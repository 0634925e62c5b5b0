package quizgen

import (
	"net/http"
	"strings"

	"github.com/abhisek/quizdeck/internal/llm"
)

// DetectDocumentType sniffs the upload types a quiz can be generated
// from. Anything else returns "".
func DetectDocumentType(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	switch ct {
	case llm.MIMETypePDF, llm.MIMETypePNG, llm.MIMETypeJPEG:
		return ct
	}
	return ""
}
