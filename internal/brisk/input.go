package brisk

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tenability/internal/models"
)

type inputDoc struct {
	Rooms []inputRoom `xml:"rooms>room"`
}

type inputRoom struct {
	ID          int     `xml:"id,attr"`
	Description string  `xml:"description"`
	MaxHeight   float64 `xml:"max_height"`
	MinHeight   float64 `xml:"min_height"`
	Length      float64 `xml:"length"`
	Width       float64 `xml:"width"`
}

// ParseInput reads room geometry from a B-RISK input1.xml document.
// Rooms are returned in document order.
func ParseInput(data []byte) ([]models.RoomGeometry, error) {
	// a byte order mark wins over the declared encoding
	r := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(encoding.Nop.NewDecoder()))
	bomDecoded := hasBOM(data)

	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(label string, in io.Reader) (io.Reader, error) {
		l := strings.ToLower(label)
		if bomDecoded || strings.HasPrefix(l, "utf-8") || strings.HasPrefix(l, "utf8") {
			return in, nil
		}
		enc, err := ianaindex.IANA.Encoding(label)
		if err != nil {
			return nil, fmt.Errorf("charset %q: %w", label, err)
		}
		if enc == nil {
			return nil, fmt.Errorf("charset %q is not supported", label)
		}
		return transform.NewReader(in, enc.NewDecoder()), nil
	}

	var doc inputDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode input xml: %w", err)
	}

	rooms := make([]models.RoomGeometry, 0, len(doc.Rooms))
	seen := make(map[string]int, len(doc.Rooms))
	for _, r := range doc.Rooms {
		name := strings.TrimSpace(r.Description)
		if name == "" {
			return nil, fmt.Errorf("room %d has no description", r.ID)
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("rooms %d and %d share the name %q", prev, r.ID, name)
		}
		seen[name] = r.ID
		rooms = append(rooms, models.RoomGeometry{
			ID:        r.ID,
			Name:      name,
			Length:    r.Length,
			Width:     r.Width,
			MinHeight: r.MinHeight,
			MaxHeight: r.MaxHeight,
		})
	}
	return rooms, nil
}

func hasBOM(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(b, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(b, []byte{0xFE, 0xFF})
}
