package evidence

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/shenikar/incident_triage/internal/models"
)

const (
	stampPadding    = 4
	stampLineHeight = 13
	stampAscent     = 11
	jpegQuality     = 85
)

var stampBand = color.RGBA{A: 160}

// StampMeta - данные, которые впечатываются в снимок
type StampMeta struct {
	CapturedAt time.Time
	Location   *models.Point
}

func (m StampMeta) lines() []string {
	lines := []string{m.CapturedAt.Format("2006-01-02 15:04:05")}
	if m.Location != nil {
		lines = append(lines, fmt.Sprintf("%.5f, %.5f", m.Location.Latitude, m.Location.Longitude))
	}
	return lines
}

// Stamp draws the capture time and, when known, the position onto the
// bottom-left of the image so the evidence survives metadata stripping.
func Stamp(img image.Image, meta StampMeta) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)

	lines := meta.lines()
	bandHeight := len(lines)*stampLineHeight + 2*stampPadding
	band := image.Rect(b.Min.X, b.Max.Y-bandHeight, b.Max.X, b.Max.Y).Intersect(b)
	draw.Draw(dst, band, &image.Uniform{C: stampBand}, image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		y := band.Min.Y + stampPadding + i*stampLineHeight + stampAscent
		d.Dot = fixed.P(b.Min.X+stampPadding, y)
		d.DrawString(line)
	}
	return dst
}

// EncodePhoto stamps img and returns it as a JPEG data URI.
func EncodePhoto(img image.Image, meta StampMeta) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Stamp(img, meta), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}
	return EncodeDataURI("image/jpeg", buf.Bytes()), nil
}
