package checkoutControllers

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Checkout states. StateCart doubles as the idle condition the flow returns
// to after confirmation or cancellation.
type State string

const (
	StateCart             State = "cart"
	StateSelectingPayment State = "selecting_payment"
	StateEnteringAddress  State = "entering_address"
	StateConfirmed        State = "confirmed"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoSavedCards    = errors.New("no saved payment methods")
	ErrWrongState      = errors.New("operation not valid in current checkout state")
	ErrCardRequired    = errors.New("a payment card must be selected")
	ErrAddressRequired = errors.New("name, street, city and country are required")
)

// AddressForm holds the transient shipping address. It lives only inside the
// session and is discarded on confirmation or cancellation — no order record
// is ever written from it.
type AddressForm struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"` // optional
}

func (a AddressForm) complete() bool {
	return strings.TrimSpace(a.Name) != "" &&
		strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.Country) != ""
}

// Session is one user's in-flight checkout. Sessions exist only in memory;
// losing the process resets every flow to its cart, which mirrors the
// storefront's page-reload behavior.
type Session struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	State        State       `json:"state"`
	SelectedCard string      `json:"selected_card,omitempty"`
	Address      AddressForm `json:"address"`
	ConfirmedAt  time.Time   `json:"confirmed_at,omitempty"`

	generation int // guards the delayed reset against a newer flow
}

// Store holds checkout sessions per user behind one mutex. Checkout traffic
// is a single user clicking through a form; contention is not a concern.
type Store struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	resetAfter time.Duration
}

// NewStore creates a session store. resetAfter is how long a confirmation
// stays visible before the flow returns to idle.
func NewStore(resetAfter time.Duration) *Store {
	return &Store{
		sessions:   make(map[string]*Session),
		resetAfter: resetAfter,
	}
}

func (s *Store) session(userID string) *Session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{
			ID:     uuid.NewString(),
			UserID: userID,
			State:  StateCart,
		}
		s.sessions[userID] = sess
	}
	return sess
}

// Begin moves the flow from Cart into payment selection. An empty cart is
// rejected; a user with zero saved cards short-circuits to the add-payment
// surface and the machine never enters SelectingPayment.
func (s *Store) Begin(userID string, itemCount, cardCount int) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	if sess.State != StateCart {
		return *sess, ErrWrongState
	}
	if itemCount == 0 {
		return *sess, ErrEmptyCart
	}
	if cardCount == 0 {
		return *sess, ErrNoSavedCards
	}

	sess.State = StateSelectingPayment
	return *sess, nil
}

// SelectPayment records the chosen card and advances to address entry.
func (s *Store) SelectPayment(userID, cardID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	if sess.State != StateSelectingPayment {
		return *sess, ErrWrongState
	}
	if cardID == "" {
		return *sess, ErrCardRequired
	}

	sess.SelectedCard = cardID
	sess.State = StateEnteringAddress
	return *sess, nil
}

// Back returns to the cart without losing the selected card; the selection
// survives for the lifetime of the in-memory session.
func (s *Store) Back(userID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	if sess.State != StateSelectingPayment && sess.State != StateEnteringAddress {
		return *sess, ErrWrongState
	}

	sess.State = StateCart
	sess.Address = AddressForm{}
	return *sess, nil
}

// SubmitAddress validates the required fields and confirms the checkout.
// Confirmed is terminal: after the configured display window the session
// resets to idle and every transient field is discarded.
func (s *Store) SubmitAddress(userID string, addr AddressForm) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	if sess.State != StateEnteringAddress {
		return *sess, ErrWrongState
	}
	if !addr.complete() {
		return *sess, ErrAddressRequired
	}

	sess.Address = addr
	sess.State = StateConfirmed
	sess.ConfirmedAt = time.Now()
	sess.generation++

	gen := sess.generation
	time.AfterFunc(s.resetAfter, func() {
		s.resetIfCurrent(userID, gen)
	})

	return *sess, nil
}

// resetIfCurrent clears the session after the confirmation window, unless a
// newer flow already replaced it.
func (s *Store) resetIfCurrent(userID string, generation int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.generation != generation || sess.State != StateConfirmed {
		return
	}
	sess.State = StateCart
	sess.SelectedCard = ""
	sess.Address = AddressForm{}
	sess.ConfirmedAt = time.Time{}
	sess.ID = uuid.NewString()
}

// Cancel aborts the flow from either intermediate state. All transient
// selections are discarded, no confirmation prompt.
func (s *Store) Cancel(userID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	if sess.State != StateSelectingPayment && sess.State != StateEnteringAddress {
		return *sess, ErrWrongState
	}

	sess.State = StateCart
	sess.SelectedCard = ""
	sess.Address = AddressForm{}
	return *sess, nil
}

// Snapshot returns the current session view.
func (s *Store) Snapshot(userID string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.session(userID)
}
