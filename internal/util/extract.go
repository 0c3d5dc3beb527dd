package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"
)

// DefaultMinTextLength is the minimum number of characters, after collapsing
// whitespace, for an extraction to count as readable.
const DefaultMinTextLength = 50

var ErrDocumentUnreadable = errors.New("document unreadable: please re-export your resume as a text-based PDF")

var (
	reHorizontalSpace = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	reBlankLines      = regexp.MustCompile(`\s*\n\s*`)
)

// TextSource turns a document buffer into plain text.
type TextSource interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

type ExtractResult struct {
	Text         string
	UsedFallback bool
}

// TextExtractor runs a direct text source and, when that yields too little
// text, an OCR source on the same buffer. Errors and panics of either source
// are logged and treated as empty text.
type TextExtractor struct {
	primary   TextSource
	fallback  TextSource
	minLength int
}

func NewTextExtractor(primary, fallback TextSource, minLength int) *TextExtractor {
	if minLength <= 0 {
		minLength = DefaultMinTextLength
	}
	return &TextExtractor{primary: primary, fallback: fallback, minLength: minLength}
}

func (e *TextExtractor) Extract(ctx context.Context, data []byte) (ExtractResult, error) {
	text := e.run(ctx, "primary", e.primary, data)
	if !e.tooShort(text) {
		return ExtractResult{Text: text}, nil
	}

	result := ExtractResult{Text: text}
	if e.fallback != nil {
		log.Printf("Primary extraction returned %d chars, falling back to OCR", utf8.RuneCountInString(CleanText(text)))
		result.UsedFallback = true
		if ocrText := e.run(ctx, "ocr", e.fallback, data); CleanText(ocrText) != "" {
			result.Text = ocrText
		}
	}

	if e.tooShort(result.Text) {
		return result, ErrDocumentUnreadable
	}
	return result, nil
}

func (e *TextExtractor) tooShort(text string) bool {
	return utf8.RuneCountInString(CleanText(text)) < e.minLength
}

func (e *TextExtractor) run(ctx context.Context, name string, src TextSource, data []byte) (text string) {
	if src == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s text extraction panicked: %v", name, r)
			text = ""
		}
	}()

	out, err := src.ExtractText(ctx, data)
	if err != nil {
		log.Printf("%s text extraction failed: %v", name, err)
		return ""
	}
	return NormalizeWhitespace(out)
}

// CleanText collapses every whitespace run, line breaks included, to a single space.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeWhitespace collapses horizontal whitespace but keeps line structure,
// which the heuristic parser relies on for section headings.
func NormalizeWhitespace(s string) string {
	s = reHorizontalSpace.ReplaceAllString(s, " ")
	s = reBlankLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// PDFTextSource reads the text layer of a PDF row by row.
type PDFTextSource struct{}

func (PDFTextSource) ExtractText(_ context.Context, data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var buf strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			log.Printf("page %d: failed to read text rows: %v", i, err)
			continue
		}
		for _, row := range rows {
			writeRow(&buf, row.Content)
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

// writeRow joins the glyph runs of one row, inserting a space where the
// horizontal gap between runs is wider than a fraction of the font size.
func writeRow(buf *strings.Builder, words pdf.TextHorizontal) {
	for i, w := range words {
		if i > 0 {
			prev := words[i-1]
			if w.X-(prev.X+prev.W) > w.FontSize*0.2 {
				buf.WriteByte(' ')
			}
		}
		buf.WriteString(w.S)
	}
}
