package studio

import (
	"sync"
	"time"

	"aigc-c2m-studio/internal/order"
)

// Store keeps one State per user key behind a mutex. Every mutation is
// a synchronous replace-or-append; readers get value copies.
type Store struct {
	mu     sync.Mutex
	states map[int64]*State
	now    func() time.Time
}

type StoreOptions struct {
	// Now overrides the clock, for tests.
	Now func() time.Time
}

func NewStore(opts StoreOptions) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		states: make(map[int64]*State),
		now:    now,
	}
}

// Get returns a snapshot of the state for key, creating it on first
// access.
func (s *Store) Get(key int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.getOrCreateLocked(key)
}

// Update applies fn atomically and returns the resulting snapshot.
func (s *Store) Update(key int64, fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.getOrCreateLocked(key)
	if fn != nil {
		fn(st)
	}
	return *st
}

func (s *Store) Login(key int64, phone string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.getOrCreateLocked(key)
	ok := st.Login(phone)
	return *st, ok
}

func (s *Store) SaveToGallery(key int64) (SavedArtwork, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(key).SaveToGallery(s.now())
}

func (s *Store) ArchiveToCart(key int64) (CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(key).ArchiveToCart(s.now())
}

func (s *Store) PlaceOrder(key int64, materialID, sizeOrModel, colorID string) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(key).PlaceOrder(materialID, sizeOrModel, colorID, s.now())
}

func (s *Store) StartFromArtwork(key int64, artworkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(key).StartFromArtwork(artworkID)
}

// begin is the single-flight entry for generation work: it runs the
// precondition check and marks the state busy in one critical section,
// returning a snapshot for the caller to work from. A nil error
// obliges the caller to invoke end exactly once.
func (s *Store) begin(key int64, check func(*State) error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.getOrCreateLocked(key)
	if st.generating {
		return State{}, ErrBusy
	}
	if check != nil {
		if err := check(st); err != nil {
			return State{}, err
		}
	}
	st.generating = true
	return *st, nil
}

// end commits the outcome of a generation round (commit may be nil on
// failure, leaving prior state intact) and releases the busy flag.
func (s *Store) end(key int64, commit func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.getOrCreateLocked(key)
	if commit != nil {
		commit(st)
	}
	st.generating = false
	return *st
}

func (s *Store) getOrCreateLocked(key int64) *State {
	if st, ok := s.states[key]; ok {
		return st
	}
	st := newState()
	s.states[key] = &st
	return s.states[key]
}
