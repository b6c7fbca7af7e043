package services

import (
	"context"
	"fmt"
	"time"

	"jellygram/pkg/errors"
	"jellygram/pkg/jellyfin"
)

// fakeMetadata serves canned item records and tracks lookups
type fakeMetadata struct {
	items map[string]*jellyfin.Item
	err   error
	calls []string
}

func (f *fakeMetadata) GetItem(ctx context.Context, itemID string) (*jellyfin.Item, error) {
	f.calls = append(f.calls, itemID)
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, errors.ErrNotFound)
	}
	return item, nil
}

// fakeImages pretends only the listed item ids have a primary image
type fakeImages struct {
	available map[string]bool
	attempts  []string
}

func (f *fakeImages) DownloadImage(ctx context.Context, itemID string) (string, func(), error) {
	f.attempts = append(f.attempts, itemID)
	if !f.available[itemID] {
		return "", nil, fmt.Errorf("image %s: %w", itemID, errors.ErrNotFound)
	}
	return "/tmp/poster-" + itemID + ".jpg", func() {}, nil
}

func (f *fakeImages) DetailsURL(itemID string) string {
	return "http://jellyfin.example/web/index.html#!/details?id=" + itemID
}

// fakeTrailers returns a fixed trailer URL or error
type fakeTrailers struct {
	url string
	err error
}

func (f *fakeTrailers) MovieTrailer(ctx context.Context, title string, year int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.url == "" {
		return "", errors.ErrNotFound
	}
	return f.url, nil
}

// fakeMessenger records dispatched messages and can be made to fail
type sentPhoto struct {
	path    string
	caption string
}

type fakeMessenger struct {
	photos []sentPhoto
	texts  []string
	err    error
}

func (f *fakeMessenger) SendPhoto(ctx context.Context, photoPath, caption string) error {
	if f.err != nil {
		return f.err
	}
	f.photos = append(f.photos, sentPhoto{path: photoPath, caption: caption})
	return nil
}

func (f *fakeMessenger) SendMessage(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeMessenger) dispatched() int {
	return len(f.photos) + len(f.texts)
}

// daysAgo formats a timestamp n calendar days in the past
func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02T15:04:05")
}
