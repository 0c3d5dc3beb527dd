package util

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// OCRTextSource rasterizes every PDF page with MuPDF and runs Tesseract on it.
// When disabled it returns no text, which leaves scanned resumes unreadable.
type OCRTextSource struct {
	Enabled  bool
	Language string
}

func NewOCRTextSource(enabled bool, language string) *OCRTextSource {
	if language == "" {
		language = "eng"
	}
	return &OCRTextSource{Enabled: enabled, Language: language}
}

func (s *OCRTextSource) ExtractText(ctx context.Context, data []byte) (string, error) {
	if !s.Enabled {
		return "", nil
	}

	// Cek apakah tesseract terinstall
	if err := checkTesseract(ctx); err != nil {
		return "", fmt.Errorf("tesseract check failed: %w", err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	log.Printf("OCR: total pages %d", doc.NumPage())

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		pageText, err := s.ocrPage(ctx, doc, n)
		if err != nil {
			lastErr = err
			log.Println(lastErr)
			continue
		}

		if len(pageText) > 0 {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if len(result) == 0 && lastErr != nil {
		return "", fmt.Errorf("failed to extract text via OCR: %w", lastErr)
	}

	log.Printf("OCR: extracted %d chars", len(result))
	return result, nil
}

func (s *OCRTextSource) ocrPage(ctx context.Context, doc *fitz.Document, n int) (string, error) {
	img, err := doc.Image(n)
	if err != nil {
		return "", fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
	}

	tmpFile, err := os.CreateTemp("", "resume-page-*.png")
	if err != nil {
		return "", fmt.Errorf("page %d: failed to create temp file: %w", n+1, err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := savePNG(tmpPath, img); err != nil {
		return "", fmt.Errorf("page %d: failed to save PNG: %w", n+1, err)
	}

	cmd := exec.CommandContext(ctx, "tesseract", tmpPath, "stdout", "-l", s.Language)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("page %d: tesseract error: %w", n+1, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// checkTesseract memverifikasi apakah tesseract terinstall dan bisa dijalankan
func checkTesseract(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, "tesseract", "--version").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w", err)
	}
	log.Printf("Tesseract version: %s", strings.Split(string(out), "\n")[0])
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
