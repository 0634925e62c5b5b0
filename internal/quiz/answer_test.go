package quiz

import "testing"

func TestFormatAnswer(t *testing.T) {
	q := Question{
		Text:           "Which are primes?",
		Options:        []string{"4", "3", "9", "5"},
		CorrectIndices: []int{1, 3},
		Explanation:    "3 and 5 have no divisors other than 1 and themselves.",
	}
	want := "Question: Which are primes?\n\nAnswer: 3, 5\n\nExplanation: 3 and 5 have no divisors other than 1 and themselves."
	if got := FormatAnswer(q); got != want {
		t.Errorf("FormatAnswer() =\n%q\nwant\n%q", got, want)
	}
}

func TestCorrectOptions_SkipsOutOfRange(t *testing.T) {
	q := Question{Options: []string{"a", "b"}, CorrectIndices: []int{1, 5}}
	got := CorrectOptions(q)
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("CorrectOptions() = %v, want [b]", got)
	}
}

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		title, file, want string
	}{
		{"My Exam", "x.pdf", "My Exam"},
		{"  ", "Midterm 2024.pdf", "Midterm 2024"},
		{"", "notes.PDF", "notes"},
		{"", "archive.tar", "archive.tar"},
		{"", "", UntitledTitle},
		{"", ".pdf", UntitledTitle},
	}
	for _, tt := range tests {
		if got := ResolveTitle(tt.title, tt.file); got != tt.want {
			t.Errorf("ResolveTitle(%q, %q) = %q, want %q", tt.title, tt.file, got, tt.want)
		}
	}
}

func TestBuiltin(t *testing.T) {
	rec, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}
	if rec.ID != DefaultID {
		t.Errorf("ID = %q, want %q", rec.ID, DefaultID)
	}
	accepted, rejected := Ingest(rec.Questions)
	if len(rejected) != 0 {
		t.Errorf("built-in quiz has invalid questions: %+v", rejected)
	}
	if len(accepted) == 0 {
		t.Error("built-in quiz is empty")
	}
}
