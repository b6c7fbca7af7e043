package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"jellygram/pkg/dates"
	"jellygram/pkg/ledger"
	"jellygram/pkg/models"
)

// FilterService decides whether an "item added" event merits a notification.
//
// Movies and seasons notify once per composite key. Episodes additionally
// pass a bulk-import guard (owning season must be old enough) and a
// freshness check on their premiere date. Checks run cheapest and most
// decisive first; the first failing check wins.
type FilterService struct {
	ledger            *ledger.Ledger
	metadata          MetadataClient
	episodeWindowDays int
	seasonWindowDays  int
}

// NewFilterService creates a new FilterService
func NewFilterService(led *ledger.Ledger, metadata MetadataClient, episodeWindowDays, seasonWindowDays int) *FilterService {
	return &FilterService{
		ledger:            led,
		metadata:          metadata,
		episodeWindowDays: episodeWindowDays,
		seasonWindowDays:  seasonWindowDays,
	}
}

// Evaluate classifies the item and applies the kind-specific rule.
// It never returns an error: anything that cannot be confirmed suppresses
// the notification (fail closed, availability must not cause spam).
func (s *FilterService) Evaluate(ctx context.Context, item *models.WebhookItem) models.Decision {
	kind := item.Kind()
	key := item.Key()

	logger := log.WithFields(log.Fields{
		"kind": kind,
		"name": item.Name,
		"key":  key,
	})

	if kind == models.KindUnknown {
		logger.WithField("item_type", item.ItemType).Info("Item type not supported, suppressing")
		return models.Decision{Outcome: models.OutcomeSuppressUnknownKind, Key: key, Reason: "unsupported item type " + item.ItemType}
	}

	if s.ledger.Contains(key) {
		logger.Info("Item already notified, suppressing duplicate")
		return models.Decision{Outcome: models.OutcomeSuppressDuplicate, Key: key, Reason: "already notified"}
	}

	if kind != models.KindEpisode {
		logger.Debug("Item passed filtering")
		return models.Decision{Outcome: models.OutcomeNotify, Key: key}
	}

	return s.evaluateEpisode(ctx, item, key, logger)
}

// evaluateEpisode runs the episode-only checks in their fixed order:
// season age first (a blanket suppressor independent of the episode),
// then the episode's own premiere date.
func (s *FilterService) evaluateEpisode(ctx context.Context, item *models.WebhookItem, key string, logger *log.Entry) models.Decision {
	seasonCreated, premiereFallback, err := s.resolveSeasonCreated(ctx, item)
	if err != nil {
		logger.WithError(err).Warn("Cannot confirm season age, suppressing")
		return models.Decision{Outcome: models.OutcomeSuppressBulkSeason, Key: key, Reason: "season age unavailable"}
	}
	if !dates.Parseable(seasonCreated) {
		logger.WithField("season_created", seasonCreated).Warn("Season creation date missing or unparseable, suppressing")
		return models.Decision{Outcome: models.OutcomeSuppressBulkSeason, Key: key, Reason: "season age unavailable"}
	}
	if !dates.OlderThanDays(seasonCreated, s.seasonWindowDays) {
		logger.WithFields(log.Fields{
			"season_created": seasonCreated,
			"window_days":    s.seasonWindowDays,
		}).Info("Season was added recently, suppressing bulk import")
		return models.Decision{Outcome: models.OutcomeSuppressBulkSeason, Key: key, Reason: "season added within window"}
	}

	premiere := item.PremiereDate
	if premiere == "" {
		premiere = premiereFallback
	}
	if premiere == "" {
		logger.Info("Episode has no premiere date, suppressing")
		return models.Decision{Outcome: models.OutcomeSuppressNoPremiereDate, Key: key, Reason: "premiere date missing"}
	}

	if !dates.WithinLastDays(premiere, s.episodeWindowDays) {
		logger.WithFields(log.Fields{
			"premiere_date": premiere,
			"window_days":   s.episodeWindowDays,
		}).Info("Episode premiered too long ago, suppressing")
		return models.Decision{Outcome: models.OutcomeSuppressStalePremiere, Key: key, Reason: "premiere outside window"}
	}

	logger.Debug("Episode passed filtering")
	return models.Decision{Outcome: models.OutcomeNotify, Key: key}
}

// resolveSeasonCreated finds the DateCreated of the episode's owning
// season. The webhook payload often lacks the season id, in which case the
// episode item is fetched first. It also returns the episode's premiere
// date when the metadata lookup surfaced one, as a fallback for payloads
// without it.
func (s *FilterService) resolveSeasonCreated(ctx context.Context, item *models.WebhookItem) (created, premiereFallback string, err error) {
	seasonID := item.SeasonID
	if seasonID == "" {
		episode, err := s.metadata.GetItem(ctx, item.ItemID)
		if err != nil {
			return "", "", err
		}
		seasonID = episode.SeasonID
		premiereFallback = episode.PremiereDate
	}

	season, err := s.metadata.GetItem(ctx, seasonID)
	if err != nil {
		return "", "", err
	}
	return season.DateCreated, premiereFallback, nil
}
