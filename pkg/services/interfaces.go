package services

import (
	"context"

	"jellygram/pkg/jellyfin"
)

// MetadataClient resolves library item metadata from the media server
type MetadataClient interface {
	GetItem(ctx context.Context, itemID string) (*jellyfin.Item, error)
}

// ImageClient fetches poster images and builds web UI deep links
type ImageClient interface {
	DownloadImage(ctx context.Context, itemID string) (string, func(), error)
	DetailsURL(itemID string) string
}

// TrailerClient looks up movie trailer URLs
type TrailerClient interface {
	MovieTrailer(ctx context.Context, title string, year int64) (string, error)
}

// Messenger dispatches outbound chat messages
type Messenger interface {
	SendPhoto(ctx context.Context, photoPath, caption string) error
	SendMessage(ctx context.Context, text string) error
}
