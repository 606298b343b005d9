// Package text provides the caption text rendering used by sortreel surfaces.
//
// The pipeline follows a separation of concerns:
//
//   - FontSource: heavyweight, shareable font resource (parses TTF/OTF data)
//   - Face: lightweight font instance at a specific size, owned by one goroutine
//   - Draw/DrawAt/Measure: rasterize or shape a string with a Face
//
// Fonts are parsed with golang.org/x/image/font/opentype. Measure shapes
// text with the HarfBuzz port from github.com/go-text/typesetting so that
// kerning is taken into account when captions are right-aligned.
//
// # Example usage
//
//	face, err := text.DefaultSource().Face(18)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer face.Close()
//
//	// right edge at x=630, top of the line at y=40
//	text.DrawAt(img, "1,024 compares", face, 630, 40, color.White, text.TopRight)
package text
