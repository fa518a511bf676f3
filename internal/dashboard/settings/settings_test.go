package settings

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func ptr[T any](v T) *T { return &v }

// go test -v --run TestDefault
func TestDefault(t *testing.T) {
	s := Default()
	if !s.AutoRefresh || s.AlertThreshold != 3 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// go test -v --run TestNewStoreRejectsInvalid
func TestNewStoreRejectsInvalid(t *testing.T) {
	if _, err := NewStore(Settings{AlertThreshold: 0.5}); err == nil {
		t.Error("expected error for threshold below 1")
	}
	if _, err := NewStore(Settings{AlertThreshold: 10}); err != nil {
		t.Errorf("upper bound is inclusive: %v", err)
	}
}

// go test -v --run TestApply
func TestApply(t *testing.T) {
	store, err := NewStore(Default())
	if err != nil {
		t.Fatal(err)
	}

	var seen []Settings
	store.OnChange(func(s Settings) { seen = append(seen, s) })

	got, err := store.Apply(Update{AlertThreshold: ptr(5.5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AlertThreshold != 5.5 || !got.AutoRefresh {
		t.Errorf("unexpected settings: %+v", got)
	}

	if _, err := store.Apply(Update{AutoRefresh: ptr(false)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := store.Get(); s.AutoRefresh || s.AlertThreshold != 5.5 {
		t.Errorf("partial update lost a field: %+v", s)
	}
	if len(seen) != 2 {
		t.Errorf("expected 2 change notifications, got %d", len(seen))
	}
}

// go test -v --run TestApplyHookReentersStore
func TestApplyHookReentersStore(t *testing.T) {
	store, err := NewStore(Default())
	if err != nil {
		t.Fatal(err)
	}

	var late int
	var observed []float64
	store.OnChange(func(s Settings) {
		observed = append(observed, store.Get().AlertThreshold)
		store.OnChange(func(Settings) { late++ })
	})

	if _, err := store.Apply(Update{AlertThreshold: ptr(6.0)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(observed) != 1 || observed[0] != 6 {
		t.Errorf("hook should see the applied settings: %v", observed)
	}
	if late != 0 {
		t.Errorf("a hook registered during Apply must wait for the next change, ran %d times", late)
	}

	if _, err := store.Apply(Update{AlertThreshold: ptr(7.0)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if late != 1 {
		t.Errorf("expected the late hook to run once, ran %d times", late)
	}
}

// go test -v --run TestApplyOutOfRange
func TestApplyOutOfRange(t *testing.T) {
	store, _ := NewStore(Default())

	_, err := store.Apply(Update{AlertThreshold: ptr(11.0), AutoRefresh: ptr(false)})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if verrs[0].Tag() != "lte" {
		t.Errorf("unexpected tag: %s", verrs[0].Tag())
	}
	if s := store.Get(); !s.AutoRefresh || s.AlertThreshold != 3 {
		t.Errorf("rejected update must not change settings: %+v", s)
	}
}
