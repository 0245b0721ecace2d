package pdfexport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"celebrai-backend/internal/contractdoc"
	"celebrai-backend/internal/domain"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// DefaultFilename is "contrato-" plus the client name with whitespace runs
// turned into hyphens, lowercased.
func DefaultFilename(clientName string) string {
	return "contrato-" + strings.ToLower(whitespaceRun.ReplaceAllString(clientName, "-")) + ".pdf"
}

// Exporter builds, renders and delivers contracts.
type Exporter struct {
	store *BlobStore
	opts  []contractdoc.Option
}

func NewExporter(opts ...contractdoc.Option) *Exporter {
	return &Exporter{store: NewBlobStore(), opts: opts}
}

// Generate lays out and renders data.
func (e *Exporter) Generate(data *domain.ContractData) ([]byte, error) {
	return Export(contractdoc.Build(data, e.opts...))
}

// Download renders data and writes it to w through a transient blob handle
// that is revoked before returning, on success and on failure. It returns the
// filename, defaulted from the client name when empty.
func (e *Exporter) Download(w io.Writer, data *domain.ContractData, filename string) (string, error) {
	if filename == "" {
		filename = DefaultFilename(data.ClientName)
	}

	blob, err := e.Generate(data)
	if err != nil {
		return "", err
	}

	handle := e.store.Create(blob)
	defer e.store.Revoke(handle)

	r, err := e.store.Open(handle)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(w, r); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, nil
}

// DownloadToFile writes the contract into dir and returns the file path.
func (e *Exporter) DownloadToFile(dir string, data *domain.ContractData, filename string) (string, error) {
	if filename == "" {
		filename = DefaultFilename(data.ClientName)
	}
	path := filepath.Join(dir, filepath.Base(filename))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := e.Download(f, data, filename); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// LiveHandles reports blob handles that have not been revoked.
func (e *Exporter) LiveHandles() int {
	return e.store.Live()
}
