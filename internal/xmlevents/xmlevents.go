// Package xmlevents adapts encoding/xml.Decoder.Token() into the flat
// startElement/endElement/characters event contract the XML driver
// consumes (spec §6 "Input format"), the streaming-equivalent of
// Tangerg-lynx/pkg/xml/xml.go's Name/Attr/StartElement/EndElement
// modelling built on the standard library's own SAX-style tokeniser.
package xmlevents

import (
	"encoding/xml"
	"io"
	"sort"

	"github.com/xcsp3go/xcsp3/internal/perr"
)

// Attr is one attribute of a start element, in document order.
type Attr struct {
	Name  string
	Value string
}

// Attrs indexes a start element's attributes by name.
type Attrs []Attr

// Get returns the value of the named attribute, ok is false when absent.
func (a Attrs) Get(name string) (string, bool) {
	for _, at := range a {
		if at.Name == name {
			return at.Value, true
		}
	}
	return "", false
}

// Handler receives events in document order. Position always refers to
// the event's starting line; encoding/xml does not expose column
// information, so every perr.Position produced here has Column == 0
// (perr.Position.String renders that as "line N").
type Handler interface {
	StartElement(tag string, attrs Attrs, pos perr.Position) error
	EndElement(tag string, pos perr.Position) error
	Characters(chunk string, pos perr.Position) error
}

// Run drives h with the token stream read from r until EOF or the first
// error from either the decoder or h. Line numbers are derived from the
// decoder's InputOffset against a newline index built as bytes are read,
// since encoding/xml.Decoder itself tracks no line counter.
func Run(r io.Reader, h Handler) error {
	lines := &lineIndex{}
	dec := xml.NewDecoder(io.TeeReader(r, lines))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		pos := perr.Position{Line: lines.lineAt(dec.InputOffset()), Column: 0}

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make(Attrs, len(t.Attr))
			for i, a := range t.Attr {
				attrs[i] = Attr{Name: a.Name.Local, Value: a.Value}
			}
			if err := h.StartElement(t.Name.Local, attrs, pos); err != nil {
				return err
			}
		case xml.EndElement:
			if err := h.EndElement(t.Name.Local, pos); err != nil {
				return err
			}
		case xml.CharData:
			if err := h.Characters(string(t), pos); err != nil {
				return err
			}
		}
	}
}

// lineIndex records the byte offset of every newline seen so far,
// letting lineAt answer "what line is byte offset N on" via binary
// search once the decoder reports how far it has consumed the stream.
type lineIndex struct {
	newlineOffsets []int64
	seen           int64
}

func (l *lineIndex) Write(p []byte) (int, error) {
	for i, b := range p {
		if b == '\n' {
			l.newlineOffsets = append(l.newlineOffsets, l.seen+int64(i))
		}
	}
	l.seen += int64(len(p))
	return len(p), nil
}

func (l *lineIndex) lineAt(offset int64) int {
	n := sort.Search(len(l.newlineOffsets), func(i int) bool {
		return l.newlineOffsets[i] >= offset
	})
	return n + 1
}
