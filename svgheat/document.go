package svgheat

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

var errNoRoot = errors.New("svgheat: document has no root element")

// Read parses an SVG (or any XML) document. Documents declaring a
// non UTF-8 encoding are transcoded.
func Read(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("svgheat: %w", err)
	}
	if doc.Root() == nil {
		return nil, errNoRoot
	}
	return doc, nil
}

// ReadFile parses the document at `path`.
func ReadFile(path string) (*etree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Write serializes `doc`.
func Write(w io.Writer, doc *etree.Document) error {
	_, err := doc.WriteTo(w)
	return err
}

// WriteFile serializes `doc` to `path`, creating or truncating it.
func WriteFile(path string, doc *etree.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
