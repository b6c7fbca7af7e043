package services

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"jellygram/pkg/ledger"
	"jellygram/pkg/models"
)

// AppService ties the webhook path together: payload normalization,
// filter decision, dispatch and ledger bookkeeping.
type AppService struct {
	mu                  sync.Mutex
	ledger              *ledger.Ledger
	filterService       *FilterService
	notificationService *NotificationService
	seasonWindowDays    int
	episodeWindowDays   int
}

// NewAppService creates a new AppService
func NewAppService(led *ledger.Ledger, filterService *FilterService, notificationService *NotificationService, episodeWindowDays, seasonWindowDays int) *AppService {
	return &AppService{
		ledger:              led,
		filterService:       filterService,
		notificationService: notificationService,
		seasonWindowDays:    seasonWindowDays,
		episodeWindowDays:   episodeWindowDays,
	}
}

// HandleItemAdded triages one webhook payload to completion. A suppressed
// item is a successful result; only dispatch failures return an error.
//
// One payload is triaged at a time: the duplicate check and the record
// written after dispatch must not interleave, or two concurrent webhooks
// for the same item would both pass the check and both notify.
func (s *AppService) HandleItemAdded(ctx context.Context, item *models.WebhookItem) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Kind() == models.KindMovie {
		item.Name, item.Year = cleanMovieTitle(item.Name, item.Year)
	}

	decision := s.filterService.Evaluate(ctx, item)
	if !decision.Outcome.Notify() {
		return &models.Result{
			Outcome: decision.Outcome,
			Message: s.suppressionMessage(item, decision),
		}, nil
	}

	if err := s.notificationService.Notify(ctx, item, decision); err != nil {
		log.WithError(err).WithField("key", decision.Key).Error("Failed to dispatch notification")
		return nil, err
	}

	log.WithFields(log.Fields{
		"kind": item.Kind(),
		"key":  decision.Key,
	}).Info("Notification sent")

	return &models.Result{
		Outcome: models.OutcomeNotify,
		Message: successMessage(item.Kind()),
	}, nil
}

// PersistLedger writes the current ledger snapshot to disk. Used by the
// periodic background task to heal a crash between record and persist.
func (s *AppService) PersistLedger() {
	if err := s.ledger.Persist(); err != nil {
		log.WithError(err).Warn("Periodic ledger persistence failed")
	}
}

// Close flushes state before shutdown
func (s *AppService) Close() error {
	return s.ledger.Persist()
}

func (s *AppService) suppressionMessage(item *models.WebhookItem, decision models.Decision) string {
	switch decision.Outcome {
	case models.OutcomeSuppressDuplicate:
		return fmt.Sprintf("%s was already notified, skipping notification", item.Kind())
	case models.OutcomeSuppressBulkSeason:
		return fmt.Sprintf("Season was added within the last %d days, skipping notification", s.seasonWindowDays)
	case models.OutcomeSuppressNoPremiereDate:
		return "Episode has no premiere date, skipping notification"
	case models.OutcomeSuppressStalePremiere:
		return fmt.Sprintf("Episode was added more than %d days ago, skipping notification", s.episodeWindowDays)
	default:
		return "Item type not supported"
	}
}

func successMessage(kind models.ItemKind) string {
	switch kind {
	case models.KindMovie:
		return "Movie notification was sent to telegram"
	case models.KindSeason:
		return "Season notification was sent to telegram"
	default:
		return "Notification sent to Telegram!"
	}
}
