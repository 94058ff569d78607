package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cedge2/jobly/db"
	"github.com/cedge2/jobly/models"
	"github.com/cedge2/jobly/repo"
	"github.com/cedge2/jobly/sqlbuild"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────────────────────────────────────

func newUserRepo(t *testing.T) repo.UserRepository {
	t.Helper()
	return repo.NewUserRepo(newTestDB(t))
}

func insertUser(t *testing.T, r repo.UserRepository, username string) *models.User {
	t.Helper()
	u, err := r.Insert(context.Background(), models.CreateUserParams{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@jobly.test",
	})
	if err != nil {
		t.Fatalf("insert %s: %v", username, err)
	}
	return u
}

// ─────────────────────────────────────────────────────────────────────────────
// Insert / Get
// ─────────────────────────────────────────────────────────────────────────────

func TestUserRepo_Insert(t *testing.T) {
	r := newUserRepo(t)

	u := insertUser(t, r, "aliya")
	if u.Username != "aliya" || u.FirstName != "Test" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.IsAdmin {
		t.Fatal("new users must not default to admin")
	}
}

func TestUserRepo_Insert_DuplicateEmail(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	insertUser(t, r, "aliya")
	_, err := r.Insert(ctx, models.CreateUserParams{
		Username:  "aliya2",
		FirstName: "Other",
		LastName:  "Person",
		Email:     "aliya@jobly.test",
	})
	if !db.IsDuplicateKey(err) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	r := newUserRepo(t)
	_, err := r.GetByUsername(context.Background(), "missing")
	if !db.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────────────────────────────────────

func TestUserRepo_Update_Partial(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	insertUser(t, r, "aliya")

	first := "Aliya"
	admin := true
	updated, err := r.Update(ctx, models.UpdateUserParams{
		Username:  "aliya",
		FirstName: &first,
		IsAdmin:   &admin,
		// LastName, Email untouched
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Aliya" || !updated.IsAdmin {
		t.Fatalf("unexpected result: %+v", updated)
	}
	if updated.LastName != "User" || updated.Email != "aliya@jobly.test" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUserRepo_Update_NoFields(t *testing.T) {
	r := newUserRepo(t)

	insertUser(t, r, "aliya")
	_, err := r.Update(context.Background(), models.UpdateUserParams{Username: "aliya"})
	if !errors.Is(err, sqlbuild.ErrNoUpdateData) {
		t.Fatalf("expected ErrNoUpdateData, got %v", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// List / Delete / Count
// ─────────────────────────────────────────────────────────────────────────────

func TestUserRepo_List_Pagination(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	for _, name := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		insertUser(t, r, name)
	}

	page, err := r.List(ctx, 3, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected 3, got %d", len(page))
	}
	if page[0].Username != "alpha" {
		t.Fatalf("expected username ordering, got %q first", page[0].Username)
	}

	page2, err := r.List(ctx, 3, 3)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page2) != 2 {
		t.Fatalf("expected 2 on page 2, got %d", len(page2))
	}
}

func TestUserRepo_Delete(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	insertUser(t, r, "aliya")
	if err := r.Delete(ctx, "aliya"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.GetByUsername(ctx, "aliya"); !db.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := r.Delete(ctx, "aliya"); !db.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUserRepo_Count(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	n, err := r.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}

	insertUser(t, r, "one")
	insertUser(t, r, "two")

	n, err = r.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
}
