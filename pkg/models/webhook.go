package models

import "fmt"

// ItemKind classifies a webhook payload by its media type
type ItemKind string

const (
	KindMovie   ItemKind = "Movie"
	KindSeason  ItemKind = "Season"
	KindEpisode ItemKind = "Episode"
	KindUnknown ItemKind = "Unknown"
)

// KindOf maps the raw ItemType field of a webhook payload to an ItemKind
func KindOf(itemType string) ItemKind {
	switch itemType {
	case "Movie":
		return KindMovie
	case "Season":
		return KindSeason
	case "Episode":
		return KindEpisode
	default:
		return KindUnknown
	}
}

// WebhookItem is the "item added" payload sent by the Jellyfin webhook plugin.
// Fields vary by item type; absent fields decode to zero values.
type WebhookItem struct {
	ItemType string `json:"ItemType" validate:"required"`
	Name     string `json:"Name"`
	Year     int64  `json:"Year,omitempty"`
	ItemID   string `json:"ItemId,omitempty"`
	ItemPath string `json:"ItemPath,omitempty"`
	Overview string `json:"Overview,omitempty"`
	RunTime  string `json:"RunTime,omitempty"`

	SeriesName string `json:"SeriesName,omitempty"`
	SeriesID   string `json:"SeriesId,omitempty"`
	SeasonID   string `json:"SeasonId,omitempty"`
	SeasonNum  string `json:"SeasonNumber00,omitempty"`
	EpisodeNum string `json:"EpisodeNumber00,omitempty"`

	// ISO-8601 timestamps; present only on some item types
	PremiereDate string `json:"PremiereDate,omitempty"`
	DateCreated  string `json:"DateCreated,omitempty"`

	ProviderIMDB string `json:"Provider_imdb,omitempty"`
	ProviderTMDB string `json:"Provider_tmdb,omitempty"`
	ProviderTVDB string `json:"Provider_tvdb,omitempty"`
}

// Kind returns the classified item kind
func (i *WebhookItem) Kind() ItemKind {
	return KindOf(i.ItemType)
}

// Key returns the deduplication key for this item
func (i *WebhookItem) Key() string {
	return NotificationKey(i.Kind(), i.Name, i.Year)
}

// NotificationKey builds the composite deduplication identity for an item.
//
// The key is intentionally "{Kind}:{Name}:{Year}" with no series or season
// component, matching ledgers written by earlier deployments. Two episodes
// sharing a title and year therefore collide; this is a known limitation.
func NotificationKey(kind ItemKind, name string, year int64) string {
	return fmt.Sprintf("%s:%s:%d", kind, name, year)
}
