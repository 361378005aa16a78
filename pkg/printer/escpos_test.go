package printer

import (
	"bytes"
	"strings"
	"testing"
)

func TestDocumentStartsInitialized(t *testing.T) {
	doc := NewDocument(48)
	if got := doc.Bytes(); !bytes.HasPrefix(got, []byte{ESC, '@'}) {
		t.Fatalf("document does not start with ESC @: % x", got[:2])
	}
}

func TestDocumentDefaultWidth(t *testing.T) {
	if got := NewDocument(0).Width(); got != 32 {
		t.Errorf("default width = %d, want 32", got)
	}
	if got := NewDocument(48).Width(); got != 48 {
		t.Errorf("width = %d, want 48", got)
	}
}

func TestKeyValueAlignment(t *testing.T) {
	tests := []struct {
		name  string
		width int
		key   string
		value string
		want  string
	}{
		{"fits", 20, "Total:", "10.00", "Total:         10.00"},
		{"overflows keeps one space", 10, "Subtotal:", "100.00", "Subtotal: 100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(tt.width)
			doc.KeyValue(tt.key, tt.value)
			line := lastLine(t, doc)
			if line != tt.want {
				t.Errorf("line = %q, want %q", line, tt.want)
			}
		})
	}
}

func TestItemLineTruncatesLongNames(t *testing.T) {
	doc := NewDocument(32)
	doc.ItemLine("2", "Produto com descricao muito longa demais", "11.00")
	line := lastLine(t, doc)

	if len(line) != 32 {
		t.Errorf("line length = %d, want 32: %q", len(line), line)
	}
	if !strings.HasPrefix(line, "2x ") {
		t.Errorf("line missing quantity prefix: %q", line)
	}
	if !strings.HasSuffix(line, "11.00") {
		t.Errorf("line missing right-aligned total: %q", line)
	}
}

func TestItemLineFractionalQuantity(t *testing.T) {
	doc := NewDocument(48)
	doc.ItemLine("0.250", "Queijo Minas kg", "10.00")
	line := lastLine(t, doc)

	if !strings.HasPrefix(line, "0.250x Queijo Minas kg") {
		t.Errorf("line = %q", line)
	}
	if !strings.HasSuffix(line, "10.00") {
		t.Errorf("line missing total: %q", line)
	}
}

func TestSeparatorFillsWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.Separator('-')
	line := lastLine(t, doc)
	if line != strings.Repeat("-", 32) {
		t.Errorf("separator = %q", line)
	}
}

func TestResetClearsBuffer(t *testing.T) {
	doc := NewDocument(32)
	doc.Text("descartado").Reset()
	got := doc.Bytes()
	if !bytes.Equal(got, []byte{ESC, '@'}) {
		t.Errorf("after reset = % x, want bare init", got)
	}
}

// lastLine strips command bytes and returns the final text line.
func lastLine(t *testing.T, doc *Document) string {
	t.Helper()
	parts := bytes.Split(doc.Bytes(), []byte{LF})
	if len(parts) < 2 {
		t.Fatal("document has no complete line")
	}
	line := parts[len(parts)-2]
	// Drop the leading init sequence when the line is the first write.
	line = bytes.TrimPrefix(line, []byte{ESC, '@'})
	return string(line)
}
