package services

import (
	"context"
	"strings"
	"testing"

	"jellygram/pkg/errors"
	"jellygram/pkg/jellyfin"
	"jellygram/pkg/ledger"
	"jellygram/pkg/models"
)

func newNotifier(led *ledger.Ledger, metadata *fakeMetadata, images *fakeImages, trailers *fakeTrailers, messenger *fakeMessenger) *NotificationService {
	if metadata == nil {
		metadata = &fakeMetadata{}
	}
	if images == nil {
		images = &fakeImages{}
	}
	if trailers == nil {
		trailers = &fakeTrailers{}
	}
	return NewNotificationService(led, metadata, images, trailers, messenger)
}

func movieDecision(item *models.WebhookItem) models.Decision {
	return models.Decision{Outcome: models.OutcomeNotify, Key: item.Key()}
}

func TestNotificationService_RecordsAfterSuccessfulDispatch(t *testing.T) {
	store := ledger.NewMemoryStore()
	led := ledger.New(store)
	messenger := &fakeMessenger{}
	notifier := newNotifier(led, nil, nil, nil, messenger)

	movie := &models.WebhookItem{ItemType: "Movie", Name: "The Matrix", Year: 1999, ItemID: "movie123"}
	if err := notifier.Notify(context.Background(), movie, movieDecision(movie)); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if messenger.dispatched() != 1 {
		t.Errorf("dispatched %d messages, want 1", messenger.dispatched())
	}
	if !led.Contains("Movie:The Matrix:1999") {
		t.Error("key not recorded after successful dispatch")
	}
	if store.Saves != 1 {
		t.Errorf("ledger persisted %d times, want 1", store.Saves)
	}
}

func TestNotificationService_DispatchFailureLeavesLedgerUntouched(t *testing.T) {
	store := ledger.NewMemoryStore()
	led := ledger.New(store)
	messenger := &fakeMessenger{err: errors.ErrDispatchFailed}
	notifier := newNotifier(led, nil, nil, nil, messenger)

	movie := &models.WebhookItem{ItemType: "Movie", Name: "The Matrix", Year: 1999, ItemID: "movie123"}
	err := notifier.Notify(context.Background(), movie, movieDecision(movie))
	if err == nil {
		t.Fatal("Notify() error = nil, want dispatch failure")
	}
	if !errors.Is(err, errors.ErrDispatchFailed) {
		t.Errorf("Notify() error = %v, want ErrDispatchFailed in chain", err)
	}

	// The next identical webhook must be able to retry and notify.
	if led.Contains("Movie:The Matrix:1999") {
		t.Error("key recorded despite failed dispatch")
	}
	if store.Saves != 0 {
		t.Errorf("ledger persisted %d times, want 0", store.Saves)
	}
}

func TestNotificationService_PersistFailureIsNotADispatchError(t *testing.T) {
	store := ledger.NewMemoryStore()
	store.SaveErr = errors.ErrPersistence
	led := ledger.New(store)
	messenger := &fakeMessenger{}
	notifier := newNotifier(led, nil, nil, nil, messenger)

	movie := &models.WebhookItem{ItemType: "Movie", Name: "The Matrix", Year: 1999, ItemID: "movie123"}
	if err := notifier.Notify(context.Background(), movie, movieDecision(movie)); err != nil {
		t.Fatalf("Notify() error = %v, want nil (persist failure is a warning)", err)
	}

	// In-memory state still suppresses duplicates for this process.
	if !led.Contains("Movie:The Matrix:1999") {
		t.Error("key missing from in-memory ledger")
	}
}

func TestNotificationService_MovieCaption(t *testing.T) {
	led := ledger.New(ledger.NewMemoryStore())
	images := &fakeImages{available: map[string]bool{"movie123": true}}
	trailers := &fakeTrailers{url: "https://youtube.com/watch?v=test"}
	messenger := &fakeMessenger{}
	notifier := newNotifier(led, nil, images, trailers, messenger)

	movie := &models.WebhookItem{
		ItemType: "Movie",
		Name:     "Test Movie",
		Year:     2023,
		ItemID:   "movie123",
		Overview: "A great test movie",
		RunTime:  "02:00:00",
	}
	if err := notifier.Notify(context.Background(), movie, movieDecision(movie)); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if len(messenger.photos) != 1 {
		t.Fatalf("sent %d photos, want 1", len(messenger.photos))
	}
	caption := messenger.photos[0].caption

	for _, want := range []string{
		"*🍿New Movie Added🍿*",
		"*Test Movie*",
		"*(2023)*",
		"A great test movie",
		"02:00:00",
		"[Trailer](https://youtube.com/watch?v=test)",
		"[Watch Now](http://jellyfin.example/web/index.html#!/details?id=movie123)",
	} {
		if !strings.Contains(caption, want) {
			t.Errorf("caption missing %q\ncaption:\n%s", want, caption)
		}
	}
}

func TestNotificationService_TrailerFailureDegrades(t *testing.T) {
	led := ledger.New(ledger.NewMemoryStore())
	trailers := &fakeTrailers{err: errors.ErrExternalService}
	messenger := &fakeMessenger{}
	notifier := newNotifier(led, nil, nil, trailers, messenger)

	movie := &models.WebhookItem{ItemType: "Movie", Name: "Test Movie", Year: 2023, ItemID: "movie123"}
	if err := notifier.Notify(context.Background(), movie, movieDecision(movie)); err != nil {
		t.Fatalf("Notify() error = %v, want nil (trailer failure must not block)", err)
	}

	if messenger.dispatched() != 1 {
		t.Fatalf("dispatched %d messages, want 1", messenger.dispatched())
	}
	if strings.Contains(messenger.texts[0], "[Trailer]") {
		t.Error("caption contains a trailer link despite lookup failure")
	}
}

func TestNotificationService_EpisodeImageFallbackChain(t *testing.T) {
	led := ledger.New(ledger.NewMemoryStore())
	images := &fakeImages{available: map[string]bool{"series123": true}}
	messenger := &fakeMessenger{}
	notifier := newNotifier(led, nil, images, nil, messenger)

	episode := &models.WebhookItem{
		ItemType:   "Episode",
		Name:       "Test Episode",
		Year:       2023,
		ItemID:     "episode123",
		SeasonID:   "season123",
		SeriesID:   "series123",
		SeriesName: "Test Series",
	}
	decision := models.Decision{Outcome: models.OutcomeNotify, Key: episode.Key()}
	if err := notifier.Notify(context.Background(), episode, decision); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	want := []string{"episode123", "season123", "series123"}
	if len(images.attempts) != len(want) {
		t.Fatalf("image attempts = %v, want %v", images.attempts, want)
	}
	for i := range want {
		if images.attempts[i] != want[i] {
			t.Fatalf("image attempts = %v, want %v", images.attempts, want)
		}
	}
	if len(messenger.photos) != 1 {
		t.Fatalf("sent %d photos, want 1", len(messenger.photos))
	}
	if messenger.photos[0].path != "/tmp/poster-series123.jpg" {
		t.Errorf("photo path = %q, want the series poster", messenger.photos[0].path)
	}
}

func TestNotificationService_NoImageSendsTextOnly(t *testing.T) {
	led := ledger.New(ledger.NewMemoryStore())
	messenger := &fakeMessenger{}
	notifier := newNotifier(led, nil, &fakeImages{}, nil, messenger)

	movie := &models.WebhookItem{ItemType: "Movie", Name: "Test Movie", Year: 2023, ItemID: "movie123"}
	if err := notifier.Notify(context.Background(), movie, movieDecision(movie)); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if len(messenger.photos) != 0 {
		t.Errorf("sent %d photos, want 0", len(messenger.photos))
	}
	if len(messenger.texts) != 1 {
		t.Errorf("sent %d text messages, want 1", len(messenger.texts))
	}
}

func TestNotificationService_SeasonOverviewFallback(t *testing.T) {
	// A season payload with no overview borrows the one from its own item
	// record, and falls back to the series poster when it has no image.
	led := ledger.New(ledger.NewMemoryStore())
	metadata := &fakeMetadata{items: map[string]*jellyfin.Item{
		"season123": {ID: "season123", SeriesID: "series123", Overview: "Test overview"},
	}}
	images := &fakeImages{available: map[string]bool{"series123": true}}
	messenger := &fakeMessenger{}
	notifier := newNotifier(led, metadata, images, nil, messenger)

	season := &models.WebhookItem{
		ItemType:   "Season",
		Name:       "Season 1",
		Year:       2023,
		ItemID:     "season123",
		SeriesName: "Test Series",
	}
	decision := models.Decision{Outcome: models.OutcomeNotify, Key: season.Key()}
	if err := notifier.Notify(context.Background(), season, decision); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if len(messenger.photos) != 1 {
		t.Fatalf("sent %d photos, want 1", len(messenger.photos))
	}
	caption := messenger.photos[0].caption
	if !strings.Contains(caption, "Test overview") {
		t.Errorf("caption missing series overview fallback:\n%s", caption)
	}
	if !strings.Contains(caption, "*📺New Season Added📺*") {
		t.Errorf("caption missing season header:\n%s", caption)
	}
	if !strings.Contains(caption, "[Watch Now](http://jellyfin.example/web/index.html#!/details?id=season123)") {
		t.Errorf("caption missing watch link:\n%s", caption)
	}
}
