package text

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

var (
	// ErrEmptyFontData is returned by NewFontSource for empty input.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned when a face is requested with a non-positive size.
	ErrInvalidSize = errors.New("text: face size must be positive")
)

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
//
// FontSource is safe for concurrent use. The faces it creates are not.
type FontSource struct {
	data   []byte
	parsed *opentype.Font
	name   string

	// shaping holds the go-text parse of the same data, created on first
	// Measure. gotext.Font is read-only and safe for concurrent use.
	shapingOnce sync.Once
	shaping     *gotext.Font
	shapingErr  error
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	parsed, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	s := &FontSource{
		data:   dataCopy,
		parsed: parsed,
	}
	if name, err := parsed.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

var defaultSource = sync.OnceValue(func() *FontSource {
	s, err := NewFontSource(goregular.TTF)
	if err != nil {
		// goregular is compiled in; failing to parse it is a build defect.
		panic(err)
	}
	return s
})

// DefaultSource returns the shared Go Regular font source.
func DefaultSource() *FontSource {
	return defaultSource()
}

// Name returns the font family name, or "" when the font has none.
func (s *FontSource) Name() string {
	return s.name
}

// Face creates a Face at the specified size (in pixels at 72 DPI).
// Each call returns a new Face; callers that draw from several goroutines
// must create one Face per goroutine.
func (s *FontSource) Face(size float64) (*Face, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	otFace, err := opentype.NewFace(s.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}

	// Hinted heights can round below ascent+descent; the gap never goes negative.
	m := otFace.Metrics()
	return &Face{
		source: s,
		size:   size,
		face:   otFace,
		metrics: Metrics{
			Ascent:  fixedToFloat(m.Ascent),
			Descent: fixedToFloat(m.Descent),
			LineGap: max(0, fixedToFloat(m.Height)-fixedToFloat(m.Ascent)-fixedToFloat(m.Descent)),
		},
	}, nil
}

// shapingFont returns the go-text parse of the font data.
func (s *FontSource) shapingFont() (*gotext.Font, error) {
	s.shapingOnce.Do(func() {
		face, err := gotext.ParseTTF(bytes.NewReader(s.data))
		if err != nil {
			s.shapingErr = fmt.Errorf("text: failed to parse font for shaping: %w", err)
			return
		}
		s.shaping = face.Font
	})
	return s.shaping, s.shapingErr
}
