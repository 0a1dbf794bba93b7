package service

import (
	"errors"
	"testing"

	"github.com/templui/studytrail/internal/apperr"
)

func TestLinkToGoal(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")

	file, err := env.files.Upload(ctx, owner.ID, "", fileHeader(t, "notes.md", []byte("# Notes\n")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	goal := env.goal(t, owner.ID, "Learn Go")
	foreign := env.goal(t, other.ID, "Learn Rust")

	if _, err := env.files.LinkToGoal(owner.ID, file.ID, foreign.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("link to foreign goal: want ErrNotFound, got %v", err)
	}
	if _, err := env.files.LinkToGoal(other.ID, file.ID, foreign.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("link foreign file: want ErrNotFound, got %v", err)
	}

	linked, err := env.files.LinkToGoal(owner.ID, file.ID, goal.ID)
	if err != nil {
		t.Fatalf("LinkToGoal: %v", err)
	}
	if !linked.LinkedTo(goal.ID) {
		t.Fatalf("returned file: want owner goal/%s got %s/%s", goal.ID, linked.OwnerType, linked.OwnerID)
	}

	stored, err := env.files.ByID(owner.ID, file.ID)
	if err != nil || !stored.LinkedTo(goal.ID) {
		t.Fatalf("stored file: got %+v, %v", stored, err)
	}

	names, err := env.files.RelatedFileNames(owner.ID, goal.ID)
	if err != nil || len(names) != 1 || names[0] != "notes.md" {
		t.Fatalf("RelatedFileNames: got %v, %v", names, err)
	}
}

func TestDeleteFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")

	file, err := env.files.Upload(ctx, owner.ID, "", fileHeader(t, "notes.txt", []byte("notes\n")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := env.files.Delete(ctx, other.ID, file.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Delete by other user: want ErrNotFound, got %v", err)
	}

	if err := env.files.Delete(ctx, owner.ID, file.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := env.files.ByID(owner.ID, file.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("ByID after delete: want ErrNotFound, got %v", err)
	}
	files, err := env.files.AllUserFiles(owner.ID)
	if err != nil || len(files) != 0 {
		t.Fatalf("AllUserFiles after delete: got %d, %v", len(files), err)
	}
}
