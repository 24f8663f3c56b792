package evidence

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/models"
)

// Facing selects the front or back camera.
type Facing string

const (
	FacingUser        Facing = "user"
	FacingEnvironment Facing = "environment"
)

// Device is an open capture source. Close releases it and must be safe to
// call once per successful open.
type Device interface {
	Snapshot(ctx context.Context) (image.Image, error)
	// Record returns at most maxBytes+1 bytes of encoded video and its MIME type.
	Record(ctx context.Context, maxBytes int64) ([]byte, string, error)
	Close() error
}

// Opener acquires a device for the requested camera.
type Opener func(ctx context.Context, facing Facing) (Device, error)

// Session owns one open device and the pending items of a report. The
// device is released on Close, Submit, SwitchDevice and on any failed
// open; pending items survive a device switch.
type Session struct {
	mu     sync.Mutex
	open   Opener
	store  Store
	device Device
	facing Facing
	closed bool
	now    func() time.Time
}

func NewSession(ctx context.Context, store Store, open Opener, facing Facing) (*Session, error) {
	s := &Session{
		open:   open,
		store:  store,
		facing: facing,
		now:    time.Now,
	}
	if err := s.acquire(ctx, facing); err != nil {
		s.closed = true
		return nil, err
	}
	return s, nil
}

func (s *Session) acquire(ctx context.Context, facing Facing) error {
	dev, err := s.open(ctx, facing)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	s.device = dev
	s.facing = facing
	return nil
}

func (s *Session) release() error {
	if s.device == nil {
		return nil
	}
	err := s.device.Close()
	s.device = nil
	return err
}

// Facing возвращает текущую камеру сессии
func (s *Session) Facing() Facing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facing
}

func (s *Session) ready(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.device == nil {
		return ErrDeviceUnavailable
	}
	items, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending evidence: %w", err)
	}
	if len(items) >= MaxItems {
		return ErrLimitReached
	}
	return nil
}

// CapturePhoto takes a snapshot, burns in the capture time and location,
// and appends it to the pending items. It returns the new pending count.
func (s *Session) CapturePhoto(ctx context.Context, location *models.Point) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	img, err := s.device.Snapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	capturedAt := s.now()
	uri, err := EncodePhoto(img, StampMeta{CapturedAt: capturedAt, Location: location})
	if err != nil {
		return 0, err
	}
	if len(uri) > MaxEncodedBytes {
		return 0, ErrPhotoTooLarge
	}
	return s.store.Add(ctx, Item{
		Kind:       KindPhoto,
		MIMEType:   "image/jpeg",
		DataURI:    uri,
		CapturedAt: capturedAt,
	})
}

// RecordVideo records a clip and appends it. A clip whose data URI exceeds
// MaxEncodedBytes is dropped with ErrVideoTooLarge and nothing is added.
func (s *Session) RecordVideo(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	data, declared, err := s.device.Record(ctx, MaxEncodedBytes)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	mimeType := DetectMIME(data, declared)
	if KindOf(mimeType) != KindVideo {
		return 0, ErrInvalidDataURI
	}
	uri := EncodeDataURI(mimeType, data)
	if len(uri) > MaxEncodedBytes {
		return 0, ErrVideoTooLarge
	}
	return s.store.Add(ctx, Item{
		Kind:       KindVideo,
		MIMEType:   mimeType,
		DataURI:    uri,
		CapturedAt: s.now(),
	})
}

// Remove drops the pending item at index.
func (s *Session) Remove(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return s.store.Remove(ctx, index)
}

// Items returns the pending items in capture order.
func (s *Session) Items(ctx context.Context) ([]Item, error) {
	return s.store.List(ctx)
}

// SwitchDevice releases the current camera and opens the other one.
func (s *Session) SwitchDevice(ctx context.Context, facing Facing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.release(); err != nil {
		return fmt.Errorf("failed to release capture device: %w", err)
	}
	return s.acquire(ctx, facing)
}

// Submit releases the device and returns the pending items.
func (s *Session) Submit(ctx context.Context) ([]Item, error) {
	items, err := s.store.List(ctx)
	if cerr := s.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Close releases the device. Calling it more than once is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.release()
}
