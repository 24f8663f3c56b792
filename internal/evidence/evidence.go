// Package evidence collects photo and video attachments for a report.
package evidence

import (
	"context"
	"sync"
	"time"

	"github.com/shenikar/incident_triage/internal/apperr"
)

const (
	// MaxItems is the hard cap on attachments per report.
	MaxItems = 5
	// MaxEncodedBytes bounds a single attachment measured as its data URI.
	MaxEncodedBytes = 5 << 20
)

var (
	ErrLimitReached      = apperr.New(apperr.KindConflict, "a report can hold at most 5 evidence items")
	ErrVideoTooLarge     = apperr.New(apperr.KindTooLarge, "video is larger than 5 MiB after encoding and was discarded")
	ErrPhotoTooLarge     = apperr.New(apperr.KindTooLarge, "photo is larger than 5 MiB after encoding and was discarded")
	ErrInvalidDataURI    = apperr.New(apperr.KindInvalid, "evidence must be a base64 data URI of an image or video")
	ErrItemNotFound      = apperr.New(apperr.KindNotFound, "no pending evidence at that position")
	ErrDeviceUnavailable = apperr.New(apperr.KindResource, "capture device is unavailable; enable camera and microphone permission and try again")
	ErrSessionClosed     = apperr.New(apperr.KindConflict, "capture session is closed")
)

type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

func (k Kind) Valid() bool {
	return k == KindPhoto || k == KindVideo
}

// Item - одно вложение, готовое к отправке
type Item struct {
	Kind       Kind      `json:"kind"`
	MIMEType   string    `json:"mime_type"`
	DataURI    string    `json:"data_uri"`
	CapturedAt time.Time `json:"captured_at"`
}

// Store holds the pending items of one report. Add must refuse the item
// with ErrLimitReached once MaxItems are held.
type Store interface {
	Add(ctx context.Context, item Item) (int, error)
	Remove(ctx context.Context, index int) error
	List(ctx context.Context) ([]Item, error)
}

// MemoryStore - хранилище вложений в памяти процесса
type MemoryStore struct {
	mu    sync.Mutex
	items []Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(_ context.Context, item Item) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) >= MaxItems {
		return len(s.items), ErrLimitReached
	}
	s.items = append(s.items, item)
	return len(s.items), nil
}

func (s *MemoryStore) Remove(_ context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return ErrItemNotFound
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, nil
}
