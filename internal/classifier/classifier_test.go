package classifier

import (
	"testing"

	"pdf-validator/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		want      domain.Reason
		wantMatch bool
	}{
		{
			name:      "clean output",
			lines:     []string{"checking file.pdf", "PDF Version: 1.7", "No syntax or stream encoding errors found"},
			want:      domain.ReasonNone,
			wantMatch: false,
		},
		{
			name:      "no output",
			lines:     nil,
			want:      domain.ReasonNone,
			wantMatch: false,
		},
		{
			name:      "not a pdf",
			lines:     []string{"WARNING: file.pdf: can't find PDF header", "qpdf: file.pdf: not a PDF file"},
			want:      domain.ReasonCorruptOrInvalid,
			wantMatch: true,
		},
		{
			name:      "password protected any case",
			lines:     []string{"checking file.pdf", "qpdf: file.pdf: INVALID PASSWORD"},
			want:      domain.ReasonPasswordProtected,
			wantMatch: true,
		},
		{
			name:      "password regardless of other noise",
			lines:     []string{"WARNING: xref stream is damaged", "file.pdf: invalid password", "trailing garbage"},
			want:      domain.ReasonPasswordProtected,
			wantMatch: true,
		},
		{
			name:      "first line wins",
			lines:     []string{"file.pdf: invalid password", "file.pdf: not a PDF file"},
			want:      domain.ReasonPasswordProtected,
			wantMatch: true,
		},
		{
			name:      "table order wins within a line",
			lines:     []string{"invalid password or not a PDF file"},
			want:      domain.ReasonCorruptOrInvalid,
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.lines, DefaultSignatures)
			if ok != tt.wantMatch {
				t.Fatalf("match = %v, want %v", ok, tt.wantMatch)
			}
			if got != tt.want {
				t.Fatalf("reason = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_ExtendedTable(t *testing.T) {
	table := append([]Signature{}, DefaultSignatures...)
	table = append(table, Signature{Pattern: "file is damaged", Reason: domain.ReasonCorruptFile})

	got, ok := Classify([]string{"WARNING: file is damaged"}, table)
	if !ok || got != domain.ReasonCorruptFile {
		t.Fatalf("expected extended signature to match, got %v (%v)", got, ok)
	}
}

func TestClassify_EmptyTableOrPattern(t *testing.T) {
	if _, ok := Classify([]string{"anything"}, nil); ok {
		t.Fatalf("expected no match with empty table")
	}
	if _, ok := Classify([]string{"anything"}, []Signature{{Pattern: "", Reason: domain.ReasonCorruptFile}}); ok {
		t.Fatalf("expected empty pattern never to match")
	}
}

// Pins the qpdf wording the default table depends on.
func TestDefaultSignatures_Wording(t *testing.T) {
	if len(DefaultSignatures) != 2 {
		t.Fatalf("expected 2 default signatures, got %d", len(DefaultSignatures))
	}
	if DefaultSignatures[0].Pattern != "not a PDF file" || DefaultSignatures[0].Reason != domain.ReasonCorruptOrInvalid {
		t.Fatalf("unexpected first signature: %+v", DefaultSignatures[0])
	}
	if DefaultSignatures[1].Pattern != "invalid password" || DefaultSignatures[1].Reason != domain.ReasonPasswordProtected {
		t.Fatalf("unexpected second signature: %+v", DefaultSignatures[1])
	}
}
