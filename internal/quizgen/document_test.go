package quizgen

import (
	"testing"

	"github.com/abhisek/quizdeck/internal/llm"
)

func TestDetectDocumentType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"pdf", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj"), llm.MIMETypePDF},
		{"png", []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR"), llm.MIMETypePNG},
		{"jpeg", []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF"), llm.MIMETypeJPEG},
		{"text", []byte("hello"), ""},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDocumentType(tt.data); got != tt.want {
				t.Errorf("DetectDocumentType() = %q, want %q", got, tt.want)
			}
		})
	}
}
