package memstore

import (
	"context"
	"testing"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/models"
)

func TestReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	counter := &models.Counter{Name: "C"}
	if err := s.CreateCounter(ctx, counter); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetCounter(ctx, counter.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Name = "mutated"

	again, err := s.GetCounter(ctx, counter.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Name != "C" {
		t.Errorf("store state leaked through returned pointer: name = %q", again.Name)
	}
}

func TestTypedNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetCounter(ctx, 1); !apperrors.IsNotFound(err) {
		t.Errorf("counter: %v", err)
	}
	if _, err := s.GetContainer(ctx, 1); !apperrors.IsNotFound(err) {
		t.Errorf("container: %v", err)
	}
	if _, err := s.GetPiece(ctx, 1); !apperrors.IsNotFound(err) {
		t.Errorf("piece: %v", err)
	}
	if _, err := s.GetUserByEmail(ctx, "x@y.z"); !apperrors.IsNotFound(err) {
		t.Errorf("user by email: %v", err)
	}
	if err := s.TransferPiece(ctx, 1, 2); !apperrors.IsNotFound(err) {
		t.Errorf("transfer: %v", err)
	}
	if err := s.SellPiece(ctx, 1); !apperrors.IsNotFound(err) {
		t.Errorf("sell: %v", err)
	}
}

func TestSequentialIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		c := &models.Counter{Name: "C"}
		if err := s.CreateCounter(ctx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
		if c.ID != want {
			t.Errorf("id = %d, want %d", c.ID, want)
		}
	}

	// IDs are never reused after a delete.
	if err := s.DeleteCounter(ctx, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	c := &models.Counter{Name: "C"}
	if err := s.CreateCounter(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID != 4 {
		t.Errorf("id = %d, want 4", c.ID)
	}
}

func TestListOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, name := range []string{"B", "A", "C"} {
		if err := s.CreateCounter(ctx, &models.Counter{Name: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := s.ListCounters(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("list not ordered by id: %d before %d", list[i-1].ID, list[i].ID)
		}
	}
}
