package pipeline

import (
	"bytes"
	"html"
	"strings"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// A markupStrategy tries to pull semantic math markup straight out of an
// equation payload, returning "" when it finds none. Strategies run in
// order; the external translator is only invoked when all of them miss.
type markupStrategy struct {
	name string
	scan func(payload []byte) string
}

var markupStrategies = []markupStrategy{
	{"raw", scanRawMarkup},
	{"utf16", scanUTF16Markup},
	{"entities", scanEntityMarkup},
	{"ole", scanOLEStreams},
}

func extractMarkup(payload []byte) string {
	for _, s := range markupStrategies {
		if m := s.scan(payload); m != "" {
			return m
		}
	}
	return ""
}

// sliceMathML cuts the first complete <math>...</math> fragment out of s.
func sliceMathML(s string) string {
	start := strings.Index(s, "<math")
	if start < 0 {
		return ""
	}
	end := strings.Index(s[start:], "</math>")
	if end < 0 {
		return ""
	}
	return s[start : start+end+len("</math>")]
}

func scanRawMarkup(payload []byte) string {
	return sliceMathML(string(payload))
}

var utf16Encodings = []encoding.Encoding{
	unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

func scanUTF16Markup(payload []byte) string {
	for _, enc := range utf16Encodings {
		decoded, err := enc.NewDecoder().Bytes(payload)
		if err != nil {
			continue
		}
		if m := sliceMathML(string(decoded)); m != "" {
			return m
		}
	}
	return ""
}

func scanEntityMarkup(payload []byte) string {
	s := string(payload)
	start := strings.Index(s, "&lt;math")
	if start < 0 {
		return ""
	}
	end := strings.Index(s[start:], "&lt;/math&gt;")
	if end < 0 {
		return ""
	}
	escaped := s[start : start+end+len("&lt;/math&gt;")]
	return html.UnescapeString(escaped)
}

// oleStreamCap bounds how much of a single compound-file stream is read
// while hunting for markup.
const oleStreamCap = 4 << 20

// scanOLEStreams walks the streams of an OLE compound file (the container
// format of embedded equation objects) and scans each one for markup.
func scanOLEStreams(payload []byte) string {
	doc, err := mscfb.New(bytes.NewReader(payload))
	if err != nil {
		return ""
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Size <= 0 || entry.Size > oleStreamCap {
			continue
		}
		buf := make([]byte, entry.Size)
		n, _ := entry.Read(buf)
		if n <= 0 {
			continue
		}
		chunk := buf[:n]
		if m := sliceMathML(string(chunk)); m != "" {
			return m
		}
		if m := scanUTF16Markup(chunk); m != "" {
			return m
		}
	}
	return ""
}
