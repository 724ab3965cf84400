// Package queue carries the fire-and-forget events of the platform over AMQP.
// Today that is a single event type: a visitor viewed an article or a listing.
// View counting is best-effort, a lost event never fails a request.
package queue

import "time"

// Event kinds / Types d'événements
const (
	KindArticleView  = "article.viewed"
	KindPropertyView = "property.viewed"
)

// ViewEvent records one view of a piece of content / Enregistre une vue d'un contenu
type ViewEvent struct {
	Kind       string    `json:"kind"`
	ContentID  string    `json:"content_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher pushes view events to the broker / Pousse les événements de vue vers le broker
type Publisher interface {
	PublishView(event ViewEvent) error
	Ping() error
	Close() error
}
