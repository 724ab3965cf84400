package client

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period applied to text search / Période de calme appliquée à la recherche texte
const DefaultDebounce = 400 * time.Millisecond

// State is the lifecycle of a listing screen / Cycle de vie d'un écran de liste
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

// Query is a serializable listing state, listquery.ArticleQuery or
// listquery.PropertyQuery in practice / État de liste sérialisable
type Query interface {
	Values() url.Values
}

// Fetch loads one page for a query / Charge une page pour une requête
type Fetch[Q Query, R any] func(ctx context.Context, q Q) (R, error)

// Snapshot is one observable controller state. Result is only meaningful in
// StateLoaded, Err in StateFailed / Un état observable du contrôleur
type Snapshot[Q Query, R any] struct {
	State  State
	Query  Q
	Result R
	Err    error
}

// Controller owns the search, filter and pagination state of one listing
// screen. Filter edits fetch immediately with the page reset, text search is
// debounced, page moves keep the filters. Responses apply last-request-wins:
// whatever a slow fetch returns, only the latest request may change the
// state / Possède l'état de recherche, filtre et pagination d'un écran de
// liste, les réponses appliquent la règle du dernier gagnant
type Controller[Q Query, R any] struct {
	fetch    Fetch[Q, R]
	debounce time.Duration
	onChange func(Snapshot[Q, R])
	syncURL  func(url.Values)

	mu      sync.Mutex
	query   Q
	state   State
	result  R
	err     error
	seq     uint64
	cancel  context.CancelFunc
	timer   *time.Timer
	lastURL string
}

// ControllerOption tunes a controller / Règle un contrôleur
type ControllerOption[Q Query, R any] func(*Controller[Q, R])

// WithDebounce overrides the search quiet period / Remplace la période de calme de la recherche
func WithDebounce[Q Query, R any](d time.Duration) ControllerOption[Q, R] {
	return func(c *Controller[Q, R]) { c.debounce = d }
}

// WithOnChange registers the state observer, called outside the controller
// lock on every transition / Enregistre l'observateur d'état
func WithOnChange[Q Query, R any](fn func(Snapshot[Q, R])) ControllerOption[Q, R] {
	return func(c *Controller[Q, R]) { c.onChange = fn }
}

// WithURLSync registers the URL writer. The controller only calls it when the
// serialized query actually changed / Enregistre l'écrivain d'URL, appelé
// seulement quand la requête sérialisée a changé
func WithURLSync[Q Query, R any](fn func(url.Values)) ControllerOption[Q, R] {
	return func(c *Controller[Q, R]) { c.syncURL = fn }
}

// NewController creates a controller seeded with initial, typically parsed
// from the current URL. No fetch is issued until Refresh or an update /
// Crée un contrôleur amorcé avec initial, en général lu depuis l'URL
func NewController[Q Query, R any](initial Q, fetch Fetch[Q, R], opts ...ControllerOption[Q, R]) *Controller[Q, R] {
	c := &Controller[Q, R]{
		fetch:    fetch,
		debounce: DefaultDebounce,
		query:    initial,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastURL = initial.Values().Encode()
	return c
}

// Snapshot returns the current observable state / Retourne l'état observable courant
func (c *Controller[Q, R]) Snapshot() Snapshot[Q, R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[Q, R]) snapshotLocked() Snapshot[Q, R] {
	return Snapshot[Q, R]{State: c.state, Query: c.query, Result: c.result, Err: c.err}
}

// Query returns the current query value / Retourne la requête courante
func (c *Controller[Q, R]) Query() Q {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Refresh fetches the current query immediately / Recharge immédiatement la requête courante
func (c *Controller[Q, R]) Refresh() {
	c.Update(func(q Q) Q { return q })
}

// Update applies a query mutation and fetches immediately. Used for filter,
// sort and page changes; the mutators carry their own page-reset rule /
// Applique une mutation de requête et recharge immédiatement
func (c *Controller[Q, R]) Update(mutate func(Q) Q) {
	c.mu.Lock()
	c.stopTimerLocked()
	c.applyLocked(mutate)
	notify := c.startFetchLocked()
	c.mu.Unlock()

	notify()
}

// UpdateDebounced schedules a query mutation after the quiet period. Each
// call restarts the clock, so a burst of keystrokes ends in one fetch with
// the final text / Planifie une mutation après la période de calme, une
// rafale de frappes finit en une seule requête avec le texte final
func (c *Controller[Q, R]) UpdateDebounced(mutate func(Q) Q) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.timer = time.AfterFunc(c.debounce, func() {
		c.Update(mutate)
	})
}

// Close cancels the pending debounce and the in-flight fetch / Annule le
// rebond en attente et la requête en vol
func (c *Controller[Q, R]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	// Bump the sequence so a response already in flight is stale / Avance la
	// séquence pour périmer une réponse déjà en vol
	c.seq++
}

func (c *Controller[Q, R]) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller[Q, R]) applyLocked(mutate func(Q) Q) {
	c.query = mutate(c.query)

	if c.syncURL == nil {
		return
	}
	values := c.query.Values()
	encoded := values.Encode()
	if encoded == c.lastURL {
		return
	}
	c.lastURL = encoded
	c.syncURL(values)
}

// startFetchLocked moves to Loading and launches the fetch goroutine. It
// returns the observer call to run after unlocking.
func (c *Controller[Q, R]) startFetchLocked() func() {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.seq++
	seq := c.seq
	query := c.query
	c.state = StateLoading
	c.err = nil

	go func() {
		result, err := c.fetch(ctx, query)

		c.mu.Lock()
		if seq != c.seq {
			// A newer request owns the state, this response is stale whatever
			// its outcome / Une requête plus récente possède l'état, cette
			// réponse est périmée quel que soit son résultat
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.state = StateFailed
			c.err = err
		} else {
			c.state = StateLoaded
			c.result = result
			c.err = nil
		}
		snapshot := c.snapshotLocked()
		c.mu.Unlock()

		if c.onChange != nil {
			c.onChange(snapshot)
		}
	}()

	snapshot := c.snapshotLocked()
	return func() {
		if c.onChange != nil {
			c.onChange(snapshot)
		}
	}
}
