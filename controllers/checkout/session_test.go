package checkoutControllers

import (
	"errors"
	"testing"
	"time"
)

const testUser = "user-1"

var validAddress = AddressForm{
	Name:    "Jane Buyer",
	Street:  "1 High St",
	City:    "Springfield",
	Country: "US",
}

func advanceToAddress(t *testing.T, store *Store) {
	t.Helper()
	if _, err := store.Begin(testUser, 2, 1); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := store.SelectPayment(testUser, "card-1"); err != nil {
		t.Fatalf("SelectPayment: %v", err)
	}
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	store := NewStore(time.Minute)

	sess, err := store.Begin(testUser, 0, 1)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	if sess.State != StateCart {
		t.Errorf("state = %q, want %q", sess.State, StateCart)
	}
}

func TestBeginShortCircuitsWithoutCards(t *testing.T) {
	store := NewStore(time.Minute)

	sess, err := store.Begin(testUser, 2, 0)
	if !errors.Is(err, ErrNoSavedCards) {
		t.Fatalf("err = %v, want ErrNoSavedCards", err)
	}
	// The machine must not enter payment selection.
	if sess.State != StateCart {
		t.Errorf("state = %q, want %q", sess.State, StateCart)
	}
}

func TestHappyPath(t *testing.T) {
	store := NewStore(time.Minute)

	sess, err := store.Begin(testUser, 2, 1)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if sess.State != StateSelectingPayment {
		t.Fatalf("state after Begin = %q, want %q", sess.State, StateSelectingPayment)
	}

	sess, err = store.SelectPayment(testUser, "card-1")
	if err != nil {
		t.Fatalf("SelectPayment: %v", err)
	}
	if sess.State != StateEnteringAddress || sess.SelectedCard != "card-1" {
		t.Fatalf("after SelectPayment: state = %q card = %q", sess.State, sess.SelectedCard)
	}

	sess, err = store.SubmitAddress(testUser, validAddress)
	if err != nil {
		t.Fatalf("SubmitAddress: %v", err)
	}
	if sess.State != StateConfirmed {
		t.Errorf("state = %q, want %q", sess.State, StateConfirmed)
	}
	if sess.ConfirmedAt.IsZero() {
		t.Errorf("ConfirmedAt not set")
	}
}

func TestAddressEntryRequiresSelectedCard(t *testing.T) {
	store := NewStore(time.Minute)

	if _, err := store.Begin(testUser, 2, 1); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// Jumping straight to the address step is not allowed.
	if _, err := store.SubmitAddress(testUser, validAddress); !errors.Is(err, ErrWrongState) {
		t.Errorf("SubmitAddress before card selection: err = %v, want ErrWrongState", err)
	}

	if _, err := store.SelectPayment(testUser, ""); !errors.Is(err, ErrCardRequired) {
		t.Errorf("empty card id: err = %v, want ErrCardRequired", err)
	}
}

func TestSubmitAddressValidatesRequiredFields(t *testing.T) {
	incomplete := []AddressForm{
		{Street: "1 High St", City: "Springfield", Country: "US"},
		{Name: "Jane", City: "Springfield", Country: "US"},
		{Name: "Jane", Street: "1 High St", Country: "US"},
		{Name: "Jane", Street: "1 High St", City: "Springfield"},
		{Name: "  ", Street: "1 High St", City: "Springfield", Country: "US"},
	}

	for i, addr := range incomplete {
		store := NewStore(time.Minute)
		advanceToAddress(t, store)
		if _, err := store.SubmitAddress(testUser, addr); !errors.Is(err, ErrAddressRequired) {
			t.Errorf("case %d: err = %v, want ErrAddressRequired", i, err)
		}
	}

	// Postal code is optional.
	store := NewStore(time.Minute)
	advanceToAddress(t, store)
	if _, err := store.SubmitAddress(testUser, validAddress); err != nil {
		t.Errorf("address without postal code rejected: %v", err)
	}
}

func TestConfirmedIsTerminalUntilReset(t *testing.T) {
	store := NewStore(time.Minute)
	advanceToAddress(t, store)
	if _, err := store.SubmitAddress(testUser, validAddress); err != nil {
		t.Fatalf("SubmitAddress: %v", err)
	}

	// No transition escapes Confirmed before the window elapses.
	if _, err := store.Begin(testUser, 2, 1); !errors.Is(err, ErrWrongState) {
		t.Errorf("Begin in Confirmed: err = %v, want ErrWrongState", err)
	}
	if _, err := store.Cancel(testUser); !errors.Is(err, ErrWrongState) {
		t.Errorf("Cancel in Confirmed: err = %v, want ErrWrongState", err)
	}
	if _, err := store.Back(testUser); !errors.Is(err, ErrWrongState) {
		t.Errorf("Back in Confirmed: err = %v, want ErrWrongState", err)
	}
}

func TestConfirmationResetsToIdle(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	advanceToAddress(t, store)
	if _, err := store.SubmitAddress(testUser, validAddress); err != nil {
		t.Fatalf("SubmitAddress: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		sess := store.Snapshot(testUser)
		if sess.State == StateCart {
			if sess.SelectedCard != "" {
				t.Errorf("card survived the reset: %q", sess.SelectedCard)
			}
			if sess.Address != (AddressForm{}) {
				t.Errorf("address survived the reset: %+v", sess.Address)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("session never reset, state = %q", sess.State)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBackPreservesSelectedCard(t *testing.T) {
	store := NewStore(time.Minute)
	advanceToAddress(t, store)

	sess, err := store.Back(testUser)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if sess.State != StateCart {
		t.Errorf("state = %q, want %q", sess.State, StateCart)
	}
	if sess.SelectedCard != "card-1" {
		t.Errorf("Back dropped the selected card: %q", sess.SelectedCard)
	}
}

func TestCancelDiscardsTransients(t *testing.T) {
	store := NewStore(time.Minute)
	advanceToAddress(t, store)

	sess, err := store.Cancel(testUser)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if sess.State != StateCart {
		t.Errorf("state = %q, want %q", sess.State, StateCart)
	}
	if sess.SelectedCard != "" {
		t.Errorf("Cancel kept the selected card: %q", sess.SelectedCard)
	}
	if sess.Address != (AddressForm{}) {
		t.Errorf("Cancel kept the address: %+v", sess.Address)
	}
}

func TestCancelFromCartIsWrongState(t *testing.T) {
	store := NewStore(time.Minute)
	if _, err := store.Cancel(testUser); !errors.Is(err, ErrWrongState) {
		t.Errorf("Cancel from idle: err = %v, want ErrWrongState", err)
	}
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	store := NewStore(time.Minute)
	if _, err := store.Begin("user-a", 1, 1); err != nil {
		t.Fatalf("Begin user-a: %v", err)
	}

	sess := store.Snapshot("user-b")
	if sess.State != StateCart {
		t.Errorf("user-b state = %q, want %q", sess.State, StateCart)
	}
}
