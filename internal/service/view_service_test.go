package service

import (
	"context"
	"errors"
	"testing"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/mocks"
	"github.com/apprendrelanguage02-max/Matrix/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewFixtures() (*mocks.MockArticleRepository, *mocks.MockPropertyRepository) {
	articles := mocks.NewMockArticleRepository()
	articles.Articles["a-1"] = &domain.Article{ID: "a-1", Title: "Budget voté"}
	properties := mocks.NewMockPropertyRepository()
	properties.Properties["p-1"] = &domain.Property{ID: "p-1", Title: "Villa à Kipé"}
	return articles, properties
}

func TestViewTrackerInlineWithoutBroker(t *testing.T) {
	articles, properties := viewFixtures()
	metrics := mocks.NewMockMetrics()
	tracker := NewViewTracker(articles, properties, nil, metrics)

	tracker.TrackArticleView(context.Background(), "a-1")
	tracker.TrackPropertyView(context.Background(), "p-1")

	assert.Equal(t, int64(1), articles.Articles["a-1"].Views)
	assert.Equal(t, int64(1), properties.Properties["p-1"].Views)
	assert.Equal(t, 2, metrics.ViewTrackedCalls)
	assert.Equal(t, 0, metrics.QueuePublishCalls, "no broker means no publish metric")
}

func TestViewTrackerPublishesWhenBrokerPresent(t *testing.T) {
	articles, properties := viewFixtures()
	publisher := mocks.NewMockPublisher()
	metrics := mocks.NewMockMetrics()
	tracker := NewViewTracker(articles, properties, publisher, metrics)

	tracker.TrackArticleView(context.Background(), "a-1")

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, queue.KindArticleView, publisher.Events[0].Kind)
	assert.Equal(t, "a-1", publisher.Events[0].ContentID)
	assert.False(t, publisher.Events[0].OccurredAt.IsZero())

	// The increment is deferred to the consumer / L'incrément est différé au consommateur
	assert.Equal(t, int64(0), articles.Articles["a-1"].Views)
	assert.True(t, metrics.LastPublishOK)
}

func TestViewTrackerFallsBackOnPublishFailure(t *testing.T) {
	articles, properties := viewFixtures()
	publisher := mocks.NewMockPublisher()
	publisher.PublishError = errors.New("broker down")
	metrics := mocks.NewMockMetrics()
	tracker := NewViewTracker(articles, properties, publisher, metrics)

	tracker.TrackPropertyView(context.Background(), "p-1")

	assert.Equal(t, int64(1), properties.Properties["p-1"].Views,
		"a broker failure falls back to the inline increment")
	assert.False(t, metrics.LastPublishOK)
}

func TestViewTrackerSwallowsStorageErrors(t *testing.T) {
	articles, properties := viewFixtures()
	tracker := NewViewTracker(articles, properties, nil, mocks.NewMockMetrics())

	// Unknown content: the view is lost, the call still returns / Contenu
	// inconnu, la vue est perdue, l'appel rend quand même la main
	tracker.TrackArticleView(context.Background(), "missing")
	assert.Equal(t, 1, articles.IncrementViewsCalls)
}

func TestViewTrackerApply(t *testing.T) {
	articles, properties := viewFixtures()
	tracker := NewViewTracker(articles, properties, nil, mocks.NewMockMetrics())

	require.NoError(t, tracker.Apply(context.Background(), queue.ViewEvent{Kind: queue.KindPropertyView, ContentID: "p-1"}))
	assert.Equal(t, int64(1), properties.Properties["p-1"].Views)

	err := tracker.Apply(context.Background(), queue.ViewEvent{Kind: "article.shared", ContentID: "a-1"})
	assert.Error(t, err, "unknown event kinds are refused so the consumer can drop them")
}
