package evidence

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/models"
)

type fakeDevice struct {
	facing    Facing
	video     []byte
	videoMIME string
	closed    int
}

func (d *fakeDevice) Snapshot(context.Context) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 160, 120))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{B: 200, A: 255}}, image.Point{}, draw.Src)
	return img, nil
}

func (d *fakeDevice) Record(context.Context, int64) ([]byte, string, error) {
	return d.video, d.videoMIME, nil
}

func (d *fakeDevice) Close() error {
	d.closed++
	return nil
}

type fakeCamera struct {
	opened  []*fakeDevice
	video   []byte
	failFor Facing
}

func (c *fakeCamera) open(_ context.Context, facing Facing) (Device, error) {
	if facing == c.failFor {
		return nil, errors.New("permission denied")
	}
	d := &fakeDevice{facing: facing, video: c.video, videoMIME: "video/webm"}
	c.opened = append(c.opened, d)
	return d, nil
}

func newTestSession(t *testing.T, cam *fakeCamera) (*Session, *MemoryStore) {
	store := NewMemoryStore()
	s, err := NewSession(context.Background(), store, cam.open, FacingEnvironment)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC) }
	return s, store
}

func TestSession_SixthCaptureRefused(t *testing.T) {
	cam := &fakeCamera{}
	s, store := newTestSession(t, cam)
	ctx := context.Background()
	loc := &models.Point{Latitude: 19.07, Longitude: 72.87}

	for i := 1; i <= MaxItems; i++ {
		n, err := s.CapturePhoto(ctx, loc)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	_, err := s.CapturePhoto(ctx, loc)
	require.ErrorIs(t, err, ErrLimitReached)

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, MaxItems)
	for _, item := range items {
		assert.Equal(t, KindPhoto, item.Kind)
		assert.Contains(t, item.DataURI, "data:image/jpeg;base64,")
	}
}

func TestSession_OversizedVideoDiscarded(t *testing.T) {
	cam := &fakeCamera{video: make([]byte, 4<<20)}
	s, store := newTestSession(t, cam)
	ctx := context.Background()

	_, err := s.RecordVideo(ctx)
	require.ErrorIs(t, err, ErrVideoTooLarge)
	assert.Equal(t, apperr.KindTooLarge, apperr.KindOf(err))

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSession_SmallVideoAdded(t *testing.T) {
	cam := &fakeCamera{video: make([]byte, 1024)}
	s, store := newTestSession(t, cam)
	ctx := context.Background()

	n, err := s.RecordVideo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	items, _ := store.List(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, KindVideo, items[0].Kind)
	assert.Equal(t, "video/webm", items[0].MIMEType)
}

func TestSession_SwitchDeviceKeepsPendingAndReleases(t *testing.T) {
	cam := &fakeCamera{}
	s, _ := newTestSession(t, cam)
	ctx := context.Background()

	_, err := s.CapturePhoto(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, s.SwitchDevice(ctx, FacingUser))
	assert.Equal(t, FacingUser, s.Facing())
	require.Len(t, cam.opened, 2)
	assert.Equal(t, 1, cam.opened[0].closed)
	assert.Equal(t, 0, cam.opened[1].closed)

	items, err := s.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, KindPhoto, items[0].Kind)

	require.NoError(t, s.Close())
	assert.Equal(t, 1, cam.opened[1].closed)
}

func TestSession_SwitchToUnavailableDevice(t *testing.T) {
	cam := &fakeCamera{failFor: FacingUser}
	s, _ := newTestSession(t, cam)
	ctx := context.Background()

	err := s.SwitchDevice(ctx, FacingUser)
	require.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.Equal(t, 1, cam.opened[0].closed)

	_, err = s.CapturePhoto(ctx, nil)
	require.ErrorIs(t, err, ErrDeviceUnavailable)
	require.NoError(t, s.Close())
}

func TestSession_OpenFailure(t *testing.T) {
	cam := &fakeCamera{failFor: FacingEnvironment}
	_, err := NewSession(context.Background(), NewMemoryStore(), cam.open, FacingEnvironment)
	require.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.Equal(t, apperr.KindResource, apperr.KindOf(err))
}

func TestSession_SubmitReleasesDevice(t *testing.T) {
	cam := &fakeCamera{}
	s, _ := newTestSession(t, cam)
	ctx := context.Background()

	_, err := s.CapturePhoto(ctx, nil)
	require.NoError(t, err)

	items, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, cam.opened[0].closed)

	require.NoError(t, s.Close())
	assert.Equal(t, 1, cam.opened[0].closed, "close after submit must not release twice")

	_, err = s.CapturePhoto(ctx, nil)
	require.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_RemoveItem(t *testing.T) {
	cam := &fakeCamera{video: make([]byte, 64)}
	s, store := newTestSession(t, cam)
	ctx := context.Background()

	_, err := s.CapturePhoto(ctx, nil)
	require.NoError(t, err)
	_, err = s.RecordVideo(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, 0))
	items, _ := store.List(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, KindVideo, items[0].Kind)

	require.ErrorIs(t, s.Remove(ctx, 3), ErrItemNotFound)
	require.NoError(t, s.Close())
}
