package evidence

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/incident_triage/internal/models"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDataURIRoundTrip(t *testing.T) {
	raw := pngBytes(t)
	uri := EncodeDataURI("image/png", raw)

	mimeType, data, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, raw, data)
}

func TestParseDataURI_Invalid(t *testing.T) {
	for _, uri := range []string{
		"",
		"https://example.com/a.png",
		"data:image/png,plain",
		"data:;base64,AAAA",
		"data:image/png;base64,@@@",
	} {
		_, _, err := ParseDataURI(uri)
		assert.ErrorIs(t, err, ErrInvalidDataURI, uri)
	}
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, "image/png", DetectMIME(pngBytes(t), "video/webm"))
	assert.Equal(t, "video/webm", DetectMIME([]byte{0, 0, 0}, "video/webm"))
}

func TestValidateAttachments(t *testing.T) {
	photo := EncodeDataURI("image/png", pngBytes(t))
	video := EncodeDataURI("video/mp4", make([]byte, 128))
	hugeVideo := EncodeDataURI("video/mp4", make([]byte, 4<<20))

	require.NoError(t, ValidateAttachments(nil))
	require.NoError(t, ValidateAttachments([]string{photo, video, "https://cdn.example.com/e/1.jpg"}))

	assert.ErrorIs(t, ValidateAttachments([]string{photo, photo, photo, photo, photo, photo}), ErrLimitReached)
	assert.ErrorIs(t, ValidateAttachments([]string{hugeVideo}), ErrVideoTooLarge)
	assert.ErrorIs(t, ValidateAttachments([]string{EncodeDataURI("text/plain", []byte("hi"))}), ErrInvalidDataURI)
	assert.ErrorIs(t, ValidateAttachments([]string{"http://insecure.example.com/a.jpg"}), ErrInvalidDataURI)
	assert.ErrorIs(t, ValidateAttachments([]string{"https://"}), ErrInvalidDataURI)
	assert.ErrorIs(t, ValidateAttachments([]string{"https:///a.jpg"}), ErrInvalidDataURI)
}

func TestStamp_BurnsIntoBottomBand(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			src.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}

	out := Stamp(src, StampMeta{
		CapturedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Location:   &models.Point{Latitude: 19.076, Longitude: 72.8777},
	})

	assert.Equal(t, src.At(10, 10), out.At(10, 10), "pixels above the band are untouched")

	bright := 0
	for y := 100 - (2*stampLineHeight + 2*stampPadding); y < 100; y++ {
		for x := 0; x < 200; x++ {
			r, g, _, _ := out.At(x, y).RGBA()
			if r > 0xC000 && g > 0xC000 {
				bright++
			}
		}
	}
	assert.Greater(t, bright, 50, "expected white text in the stamp band")
}

func TestEncodePhoto(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	uri, err := EncodePhoto(src, StampMeta{CapturedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
}
