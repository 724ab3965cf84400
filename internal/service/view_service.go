package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
	"github.com/apprendrelanguage02-max/Matrix/internal/queue"
)

// ViewMetricsRecorder records view counting metrics / Enregistre les métriques de comptage de vues
type ViewMetricsRecorder interface {
	RecordViewTracked(kind string)
	RecordQueuePublish(ok bool)
}

// ViewTracker counts content views. With a broker configured the increment
// goes through the queue so a slow database never delays a page read, without
// one it is applied inline / Avec un broker l'incrément passe par la file,
// sans broker il est appliqué en ligne
type ViewTracker struct {
	articles   ports.ArticleWriter
	properties ports.PropertyWriter
	publisher  queue.Publisher
	metrics    ViewMetricsRecorder
}

// NewViewTracker creates a tracker. publisher may be nil / Crée un traqueur, publisher peut être nil
func NewViewTracker(articles ports.ArticleWriter, properties ports.PropertyWriter, publisher queue.Publisher, metrics ViewMetricsRecorder) *ViewTracker {
	return &ViewTracker{
		articles:   articles,
		properties: properties,
		publisher:  publisher,
		metrics:    metrics,
	}
}

// TrackArticleView counts one article read / Compte une lecture d'article
func (t *ViewTracker) TrackArticleView(ctx context.Context, articleID string) {
	t.track(ctx, queue.KindArticleView, articleID)
}

// TrackPropertyView counts one listing view / Compte une consultation d'annonce
func (t *ViewTracker) TrackPropertyView(ctx context.Context, propertyID string) {
	t.track(ctx, queue.KindPropertyView, propertyID)
}

func (t *ViewTracker) track(ctx context.Context, kind, contentID string) {
	t.metrics.RecordViewTracked(kind)

	if t.publisher != nil {
		event := queue.ViewEvent{Kind: kind, ContentID: contentID, OccurredAt: time.Now().UTC()}
		if err := t.publisher.PublishView(event); err != nil {
			t.metrics.RecordQueuePublish(false)
			slog.Warn("view publish failed, applying inline", "kind", kind, "content_id", contentID, "err", err)
			t.applyDirect(ctx, kind, contentID)
			return
		}
		t.metrics.RecordQueuePublish(true)
		return
	}

	t.applyDirect(ctx, kind, contentID)
}

func (t *ViewTracker) applyDirect(ctx context.Context, kind, contentID string) {
	if err := t.Apply(ctx, queue.ViewEvent{Kind: kind, ContentID: contentID, OccurredAt: time.Now().UTC()}); err != nil {
		// A lost view is not worth failing the request / Une vue perdue ne vaut pas un échec de requête
		slog.Warn("view increment failed", "kind", kind, "content_id", contentID, "err", err)
	}
}

// Apply stores one view event, it is also the consumer handler / Stocke un
// événement de vue, sert aussi de handler au consommateur
func (t *ViewTracker) Apply(ctx context.Context, event queue.ViewEvent) error {
	switch event.Kind {
	case queue.KindArticleView:
		return t.articles.IncrementViews(ctx, event.ContentID)
	case queue.KindPropertyView:
		return t.properties.IncrementViews(ctx, event.ContentID)
	default:
		return errors.New("unknown view event kind: " + event.Kind)
	}
}
