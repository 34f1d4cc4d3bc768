// Package docx provides access to the DOCX zip container and the markup
// scanning passes that locate formulas and images and extract plain text.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// Required container entries. Absence of either is a fatal request error.
const (
	DocumentEntry = "word/document.xml"
	RelsEntry     = "word/_rels/document.xml.rels"
)

// MissingEntryError reports a required container entry that was not found.
type MissingEntryError struct {
	Entry string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("required entry %q not found in document package", e.Entry)
}

// Package wraps an opened DOCX container and resolves internal paths to
// byte payloads.
type Package struct {
	entries map[string]*zip.File
}

// Open reads a DOCX payload and verifies the required entries exist.
func Open(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open document package: %w", err)
	}
	p := &Package{entries: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		p.entries[f.Name] = f
	}
	for _, required := range []string{DocumentEntry, RelsEntry} {
		if _, ok := p.entries[required]; !ok {
			return nil, &MissingEntryError{Entry: required}
		}
	}
	return p, nil
}

// Get returns the raw bytes of an entry. Absent or unreadable entries
// report ok=false; only the two required entries are fatal, and those are
// checked at Open time.
func (p *Package) Get(name string) ([]byte, bool) {
	f, ok := p.entries[name]
	if !ok {
		return nil, false
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false
	}
	return data, true
}

// ResolveTarget maps a relationship target (relative to word/) to a
// container entry path.
func ResolveTarget(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "word/") {
		return path.Clean(target)
	}
	return path.Join("word", target)
}
