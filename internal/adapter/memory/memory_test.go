package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"axisconv/internal/domain"
)

func TestAxisRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := int64(1)
	unit := "mas"

	id, err := db.CreateAxis(ctx, domain.Axis{
		UserID: userID, Name: "mas", Kind: domain.KindScaling, Factor: 2, Unit: &unit,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateAxis: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero ID")
	}

	// Stored unit is independent of the caller's pointer
	unit = "changed"

	got, err := db.GetAxis(ctx, userID, id)
	if err != nil {
		t.Fatalf("GetAxis: %v", err)
	}
	if got.Unit == nil || *got.Unit != "mas" {
		t.Errorf("expected unit mas, got %v", got.Unit)
	}

	// Duplicate name for the same user
	_, err = db.CreateAxis(ctx, domain.Axis{UserID: userID, Name: "mas", Kind: domain.KindReflect})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	// Same name is fine for another user
	if _, err := db.CreateAxis(ctx, domain.Axis{UserID: 2, Name: "mas", Kind: domain.KindReflect}); err != nil {
		t.Errorf("CreateAxis other user: %v", err)
	}

	// Other user cannot see it
	if _, err := db.GetAxis(ctx, 999, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other user, got %v", err)
	}

	list, err := db.ListAxes(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListAxes: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 axis, got %d", len(list))
	}

	if err := db.DeleteAxis(ctx, userID, id); err != nil {
		t.Fatalf("DeleteAxis: %v", err)
	}
	if err := db.DeleteAxis(ctx, userID, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListAxes_NewestFirstAndLimit(t *testing.T) {
	db := New()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"a", "b", "c"} {
		_, err := db.CreateAxis(ctx, domain.Axis{
			UserID: 1, Name: name, Kind: domain.KindReflect,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	list, _ := db.ListAxes(ctx, 1, 2)
	if len(list) != 2 {
		t.Fatalf("expected 2 axes, got %d", len(list))
	}
	if list[0].Name != "c" || list[1].Name != "b" {
		t.Errorf("expected [c b], got [%s %s]", list[0].Name, list[1].Name)
	}
}

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "testuser", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected ID")
	}

	if _, err := db.Create(ctx, "testuser", "hash"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	got, err := db.GetByUsername(ctx, "testuser")
	if err != nil || got.ID != u.ID {
		t.Errorf("GetByUsername: %v %v", got, err)
	}
	if _, err := db.GetByID(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	count, _ := db.Count(ctx)
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	now := time.Now()

	live := domain.Session{Token: "live", UserID: 1, ExpiresAt: now.Add(time.Hour)}
	stale := domain.Session{Token: "stale", UserID: 1, ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []domain.Session{live, stale} {
		if err := db.CreateSession(ctx, s); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
	}

	if err := db.DeleteExpiredSessions(ctx, now); err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetSession(ctx, "stale"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected stale session purged, got %v", err)
	}
	if _, err := db.GetSession(ctx, "live"); err != nil {
		t.Errorf("expected live session kept, got %v", err)
	}

	_ = db.DeleteSession(ctx, "live")
	if _, err := db.GetSession(ctx, "live"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected deleted session gone, got %v", err)
	}
}
