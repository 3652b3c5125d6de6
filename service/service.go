package service

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/storefront-labs/storefront-api/models"
	"github.com/storefront-labs/storefront-api/store"
)

// ErrInvalidQuantity rejects non-positive quantities on cart additions.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Order lifecycle events pushed to the websocket feed.
const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
)

type OrderEvent struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

// Service is the order-processing core: cart aggregation, checkout, the order
// lifecycle and the reporting reads, over any store.Store.
type Service struct {
	store store.Store
	log   *zap.Logger

	// userLocks serializes mutations to the same user's cart (two browser
	// tabs racing on the merge-quantity step) and checkout. Keys are user ids.
	userLocks sync.Map // map[string]*sync.Mutex

	onEvent func(OrderEvent)
}

func New(st store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, log: log}
}

// OnOrderEvent registers a single subscriber for order lifecycle events.
// Must be called before the service starts handling requests.
func (s *Service) OnOrderEvent(fn func(OrderEvent)) {
	s.onEvent = fn
}

func (s *Service) emit(evt OrderEvent) {
	if s.onEvent != nil {
		s.onEvent(evt)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// lockUser acquires the process-local lock for one user and returns the
// unlock func.
func (s *Service) lockUser(userID string) func() {
	if v, ok := s.userLocks.Load(userID); ok {
		m := v.(*sync.Mutex)
		m.Lock()
		return m.Unlock
	}
	m := &sync.Mutex{}
	actual, _ := s.userLocks.LoadOrStore(userID, m)
	mtx := actual.(*sync.Mutex)
	mtx.Lock()
	return mtx.Unlock
}
