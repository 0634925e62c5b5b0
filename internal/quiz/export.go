package quiz

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/mod/semver"
)

// ExportVersion is the format version written by Export.
// Import accepts any version with the same major component.
const ExportVersion = "v1.1.0"

// Document is the portable JSON form of a quiz.
type Document struct {
	Version        string     `json:"version"`
	Title          string     `json:"title"`
	SourceFileName string     `json:"source_file_name,omitempty"`
	ExportedAt     time.Time  `json:"exported_at"`
	Questions      []Question `json:"questions"`
}

// Export writes r to w as an indented Document.
func Export(w io.Writer, r *Record, now time.Time) error {
	doc := Document{
		Version:        ExportVersion,
		Title:          r.Title,
		SourceFileName: r.SourceFileName,
		ExportedAt:     now.UTC(),
		Questions:      r.Questions,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode quiz document: %w", err)
	}
	return nil
}

// Import reads a Document from rd and checks version compatibility.
// Questions are run through Ingest; rejected questions are reported
// alongside the document.
func Import(rd io.Reader) (*Document, []Rejection, error) {
	var doc Document
	if err := json.NewDecoder(rd).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decode quiz document: %w", err)
	}

	if !semver.IsValid(doc.Version) {
		return nil, nil, fmt.Errorf("invalid document version %q", doc.Version)
	}
	if semver.Major(doc.Version) != semver.Major(ExportVersion) {
		return nil, nil, fmt.Errorf("unsupported document version %s (want %s.x)", doc.Version, semver.Major(ExportVersion))
	}
	if semver.Compare(doc.Version, ExportVersion) > 0 {
		return nil, nil, fmt.Errorf("document version %s is newer than supported %s", doc.Version, ExportVersion)
	}

	accepted, rejected := Ingest(doc.Questions)
	if len(accepted) == 0 {
		return nil, rejected, fmt.Errorf("document contains no valid questions")
	}
	doc.Questions = accepted
	return &doc, rejected, nil
}
