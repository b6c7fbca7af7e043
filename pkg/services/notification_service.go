package services

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"jellygram/pkg/errors"
	"jellygram/pkg/ledger"
	"jellygram/pkg/models"
)

// NotificationService composes and dispatches item-added notifications.
//
// Dispatch comes first, bookkeeping second: the ledger records an item only
// after Telegram confirmed the message, so a failed dispatch leaves the
// ledger untouched and a redelivered webhook can retry. A duplicate after a
// crash between dispatch and persist is the accepted trade-off.
type NotificationService struct {
	ledger    *ledger.Ledger
	metadata  MetadataClient
	images    ImageClient
	trailers  TrailerClient
	messenger Messenger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(led *ledger.Ledger, metadata MetadataClient, images ImageClient, trailers TrailerClient, messenger Messenger) *NotificationService {
	return &NotificationService{
		ledger:    led,
		metadata:  metadata,
		images:    images,
		trailers:  trailers,
		messenger: messenger,
	}
}

// Notify builds the message for an item that passed filtering, dispatches
// it, and records the item as notified.
func (s *NotificationService) Notify(ctx context.Context, item *models.WebhookItem, decision models.Decision) error {
	caption, imageIDs := s.compose(ctx, item)

	if err := s.dispatch(ctx, caption, imageIDs); err != nil {
		return errors.NewServiceError("notification", "dispatch", err)
	}

	s.markNotified(decision.Key)
	return nil
}

// compose builds the caption and the image source fallback chain
func (s *NotificationService) compose(ctx context.Context, item *models.WebhookItem) (string, []string) {
	switch item.Kind() {
	case models.KindMovie:
		return s.composeMovie(ctx, item), imageChain(item.ItemID)
	case models.KindSeason:
		return s.composeSeason(ctx, item)
	default:
		return s.composeEpisode(ctx, item)
	}
}

func (s *NotificationService) composeMovie(ctx context.Context, item *models.WebhookItem) string {
	var b strings.Builder
	b.WriteString("*🍿New Movie Added🍿*\n\n")
	b.WriteString(fmt.Sprintf("*%s* *(%d)*\n", item.Name, item.Year))
	if item.Overview != "" {
		b.WriteString("\n" + item.Overview + "\n")
	}
	if item.RunTime != "" {
		b.WriteString("\nRuntime: " + item.RunTime + "\n")
	}

	if trailerURL, err := s.trailers.MovieTrailer(ctx, item.Name, item.Year); err == nil {
		b.WriteString(fmt.Sprintf("\n[Trailer](%s)\n", trailerURL))
	} else if !errors.Is(err, errors.ErrNotFound) {
		log.WithError(err).WithField("name", item.Name).Warn("Trailer lookup failed, sending without trailer")
	}

	b.WriteString(fmt.Sprintf("\n[Watch Now](%s)", s.images.DetailsURL(item.ItemID)))
	return b.String()
}

func (s *NotificationService) composeSeason(ctx context.Context, item *models.WebhookItem) (string, []string) {
	overview := item.Overview
	seriesID := item.SeriesID

	// The season payload rarely carries the series id or a usable
	// overview; its own item record has both.
	if overview == "" || seriesID == "" {
		if season, err := s.metadata.GetItem(ctx, item.ItemID); err == nil {
			if seriesID == "" {
				seriesID = season.SeriesID
			}
			if overview == "" {
				overview = season.Overview
			}
		} else {
			log.WithError(err).WithField("item_id", item.ItemID).Warn("Season metadata lookup failed")
		}
	}

	var b strings.Builder
	b.WriteString("*📺New Season Added📺*\n\n")
	if item.SeriesName != "" {
		b.WriteString(fmt.Sprintf("*%s* - %s *(%d)*\n", item.SeriesName, item.Name, item.Year))
	} else {
		b.WriteString(fmt.Sprintf("*%s* *(%d)*\n", item.Name, item.Year))
	}
	if overview != "" {
		b.WriteString("\n" + overview + "\n")
	}
	b.WriteString(fmt.Sprintf("\n[Watch Now](%s)", s.images.DetailsURL(item.ItemID)))

	return b.String(), imageChain(item.ItemID, seriesID)
}

func (s *NotificationService) composeEpisode(ctx context.Context, item *models.WebhookItem) (string, []string) {
	seasonID := item.SeasonID
	seriesID := item.SeriesID
	if seasonID == "" || seriesID == "" {
		if episode, err := s.metadata.GetItem(ctx, item.ItemID); err == nil {
			if seasonID == "" {
				seasonID = episode.SeasonID
			}
			if seriesID == "" {
				seriesID = episode.SeriesID
			}
		} else {
			log.WithError(err).WithField("item_id", item.ItemID).Warn("Episode metadata lookup failed")
		}
	}

	var b strings.Builder
	b.WriteString("*📺New Episode Added📺*\n\n")
	title := item.Name
	if item.SeasonNum != "" && item.EpisodeNum != "" {
		title = fmt.Sprintf("S%sE%s - %s", item.SeasonNum, item.EpisodeNum, item.Name)
	}
	if item.SeriesName != "" {
		b.WriteString(fmt.Sprintf("*%s* %s\n", item.SeriesName, title))
	} else {
		b.WriteString(fmt.Sprintf("*%s*\n", title))
	}
	if item.Overview != "" {
		b.WriteString("\n" + item.Overview + "\n")
	}
	b.WriteString(fmt.Sprintf("\n[Watch Now](%s)", s.images.DetailsURL(item.ItemID)))

	return b.String(), imageChain(item.ItemID, seasonID, seriesID)
}

// dispatch sends the message, walking the image fallback chain. A message
// with no usable image still goes out as plain text; only the Telegram
// call itself failing is a dispatch failure.
func (s *NotificationService) dispatch(ctx context.Context, caption string, imageIDs []string) error {
	for _, id := range imageIDs {
		path, cleanup, err := s.images.DownloadImage(ctx, id)
		if err != nil {
			log.WithError(err).WithField("image_id", id).Debug("Image unavailable, trying next source")
			continue
		}
		err = s.messenger.SendPhoto(ctx, path, caption)
		cleanup()
		return err
	}

	log.Debug("No image available, sending text-only notification")
	return s.messenger.SendMessage(ctx, caption)
}

// markNotified records the key and persists the ledger. Persistence
// failure after a confirmed send is a durability warning, not an error:
// the in-memory ledger still suppresses duplicates for this process.
func (s *NotificationService) markNotified(key string) {
	s.ledger.Record(key)
	if err := s.ledger.Persist(); err != nil {
		log.WithError(err).WithField("key", key).Warn("Failed to persist notification ledger")
	}
}

// imageChain filters empty ids out of a fallback chain
func imageChain(ids ...string) []string {
	chain := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			chain = append(chain, id)
		}
	}
	return chain
}
