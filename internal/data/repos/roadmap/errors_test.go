package roadmap

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/data/repos/testutil"
	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/dbctx"
)

func TestClassifyPostgresErrors(t *testing.T) {
	cases := []struct {
		code     string
		conflict bool
	}{
		{"23505", true},
		{"40001", true},
		{"40P01", true},
		{"23503", false},
		{"42P01", false},
	}
	for _, tc := range cases {
		raw := &pgconn.PgError{Code: tc.code, Message: "boom"}
		err := classify(raw)
		if got := errors.Is(err, ErrVersionConflict); got != tc.conflict {
			t.Fatalf("%s: conflict want=%v got=%v", tc.code, tc.conflict, got)
		}
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != tc.code {
			t.Fatalf("%s: cause lost: %v", tc.code, err)
		}
	}
	if classify(nil) != nil {
		t.Fatalf("classify(nil) should be nil")
	}
	plain := errors.New("connection reset")
	if classify(plain) != plain {
		t.Fatalf("unrelated errors should pass through")
	}
}

func TestRoadmapRepoDuplicateCreateIsConflict(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewRoadmapRepo(db, testutil.Logger(t))

	first := &types.Roadmap{UserID: testutil.UserID(), Skill: "go", Level: "beginner", Goal: "Learn go", Steps: seedSteps()}
	if _, err := repo.Create(dbc, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	dup := &types.Roadmap{ID: first.ID, UserID: first.UserID, Skill: "go", Level: "beginner", Goal: "Learn go", Steps: seedSteps()}
	if _, err := repo.Create(dbc, dup); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("duplicate create: want ErrVersionConflict got %v", err)
	}
}
