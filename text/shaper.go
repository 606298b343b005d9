package text

import (
	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
)

// Measure returns the horizontal advance of s in pixels.
//
// The string is shaped with go-text's HarfBuzz shaper so kerning pairs
// are honoured. When the font cannot be shaped, Measure falls back to
// summing the per-rune advances of the face.
func Measure(s string, face *Face) float64 {
	if s == "" || face == nil {
		return 0
	}

	ft, err := face.source.shapingFont()
	if err != nil {
		return fallbackAdvance(s, face)
	}

	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(ft),
		Size:      floatToFixed(face.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	// HarfbuzzShaper keeps scratch buffers and is not safe for concurrent
	// use; a Face is single-goroutine so a fresh shaper per call is fine.
	var hb shaping.HarfbuzzShaper
	out := hb.Shape(input)
	return fixedToFloat(out.Advance)
}

func fallbackAdvance(s string, face *Face) float64 {
	if face.face == nil {
		return 0
	}
	return fixedToFloat(font.MeasureString(face.face, s))
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
