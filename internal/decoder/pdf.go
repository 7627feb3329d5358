package decoder

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/statementlens/statementlens/internal/models"
)

var (
	// ErrCredentialRequired signals an encrypted document opened without a
	// credential. Retryable: reopen with the credential supplied.
	ErrCredentialRequired = errors.New("document requires a credential")

	// ErrWrongCredential signals that the supplied credential did not unlock
	// the document.
	ErrWrongCredential = errors.New("wrong credential for document")
)

// Document is an open statement PDF exposing positioned text tokens per page.
type Document struct {
	f *os.File
	r *pdf.Reader
}

// Open opens a statement PDF. credential may be empty for unprotected
// documents. Any failure other than the two credential errors is a per-file
// fatal decode failure.
func Open(path, credential string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	r, err := newReader(f, st.Size(), credential)
	if err != nil {
		f.Close()
		if errors.Is(err, pdf.ErrInvalidPassword) {
			if credential == "" {
				return nil, ErrCredentialRequired
			}
			return nil, ErrWrongCredential
		}
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	if r.NumPage() == 0 {
		f.Close()
		return nil, fmt.Errorf("decode %q: document has no pages", path)
	}
	return &Document{f: f, r: r}, nil
}

// newReader wraps the PDF library, converting its panics into errors. The
// password callback is handed the credential exactly once; returning "" on
// the second call makes the library give up with ErrInvalidPassword instead
// of looping.
func newReader(f *os.File, size int64, credential string) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	asked := false
	return pdf.NewReaderEncrypted(f, size, func() string {
		if asked || credential == "" {
			return ""
		}
		asked = true
		return credential
	})
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.r.NumPage()
}

// PageTokens returns the positioned text fragments of a page (1-based).
// Pages without a text layer yield an empty token list, not an error.
func (d *Document) PageTokens(pageIndex int) (tokens []models.Token, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: PDF library crashed: %v", pageIndex, rec)
		}
	}()

	page := d.r.Page(pageIndex)
	if page.V.IsNull() {
		return nil, nil
	}
	content := page.Content()
	tokens = make([]models.Token, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		tokens = append(tokens, models.Token{Text: t.S, X: t.X, Y: t.Y})
	}
	return tokens, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.f.Close()
}
