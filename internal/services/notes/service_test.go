package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
	pgrepo "github.com/mlebedz/pairline/backend/internal/repo/postgres"
)

type stubMatchStore struct {
	matches map[int64]model.Match
}

func (s *stubMatchStore) GetByID(_ context.Context, id int64) (model.Match, error) {
	match, ok := s.matches[id]
	if !ok {
		return model.Match{}, pgrepo.ErrMatchNotFound
	}
	return match, nil
}

type noteKey struct {
	matchID  int64
	authorID int64
}

type stubNoteStore struct {
	notes map[noteKey]model.MatchNote
}

func newStubNoteStore() *stubNoteStore {
	return &stubNoteStore{notes: make(map[noteKey]model.MatchNote)}
}

func (s *stubNoteStore) Upsert(_ context.Context, matchID, authorID int64, body string) (model.MatchNote, error) {
	key := noteKey{matchID: matchID, authorID: authorID}
	note, ok := s.notes[key]
	now := time.Now().UTC()
	if !ok {
		note = model.MatchNote{ID: int64(len(s.notes) + 1), MatchID: matchID, AuthorID: authorID, CreatedAt: now}
	}
	note.Body = body
	note.UpdatedAt = now
	s.notes[key] = note
	return note, nil
}

func (s *stubNoteStore) Get(_ context.Context, matchID, authorID int64) (model.MatchNote, error) {
	note, ok := s.notes[noteKey{matchID: matchID, authorID: authorID}]
	if !ok {
		return model.MatchNote{}, pgrepo.ErrNoteNotFound
	}
	return note, nil
}

func (s *stubNoteStore) Delete(_ context.Context, matchID, authorID int64) (bool, error) {
	key := noteKey{matchID: matchID, authorID: authorID}
	if _, ok := s.notes[key]; !ok {
		return false, nil
	}
	delete(s.notes, key)
	return true, nil
}

func newNotesServiceForTest() (*Service, *stubNoteStore) {
	noteStore := newStubNoteStore()
	svc := NewService(Dependencies{
		Matches: &stubMatchStore{matches: map[int64]model.Match{
			10: {ID: 10, UserAID: 1, UserBID: 2, IsActive: true},
		}},
		Notes: noteStore,
	})
	return svc, noteStore
}

func TestNotesArePrivatePerAuthor(t *testing.T) {
	svc, _ := newNotesServiceForTest()
	ctx := context.Background()

	if _, err := svc.Save(ctx, 1, 10, "liked the jazz bar idea"); err != nil {
		t.Fatalf("save note for user 1: %v", err)
	}

	note, err := svc.Get(ctx, 2, 10)
	if err != nil {
		t.Fatalf("get note for user 2: %v", err)
	}
	if note.Body != "" {
		t.Fatalf("user 2 should not see user 1's note, got %q", note.Body)
	}

	mine, err := svc.Get(ctx, 1, 10)
	if err != nil {
		t.Fatalf("get own note: %v", err)
	}
	if mine.Body != "liked the jazz bar idea" {
		t.Fatalf("unexpected note body: %q", mine.Body)
	}
}

func TestSaveOverwritesExistingNote(t *testing.T) {
	svc, store := newNotesServiceForTest()
	ctx := context.Background()

	if _, err := svc.Save(ctx, 1, 10, "first draft"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	note, err := svc.Save(ctx, 1, 10, "second draft")
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if note.Body != "second draft" {
		t.Fatalf("unexpected body after overwrite: %q", note.Body)
	}
	if len(store.notes) != 1 {
		t.Fatalf("overwrite should keep a single note, got %d", len(store.notes))
	}
}

func TestNotesHideForeignMatches(t *testing.T) {
	svc, _ := newNotesServiceForTest()
	ctx := context.Background()

	if _, err := svc.Get(ctx, 3, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-participant get should be not found, got err=%v", err)
	}
	if _, err := svc.Save(ctx, 3, 10, "spying"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-participant save should be not found, got err=%v", err)
	}
	if _, err := svc.Get(ctx, 1, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing match should be not found, got err=%v", err)
	}
}

func TestSaveValidatesBody(t *testing.T) {
	svc, _ := newNotesServiceForTest()
	ctx := context.Background()

	if _, err := svc.Save(ctx, 1, 10, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank body should fail validation, got err=%v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	svc, _ := newNotesServiceForTest()
	ctx := context.Background()

	if err := svc.Delete(ctx, 1, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting a missing note should be not found, got err=%v", err)
	}

	if _, err := svc.Save(ctx, 1, 10, "keep this"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(ctx, 1, 10); err != nil {
		t.Fatalf("delete: %v", err)
	}

	note, err := svc.Get(ctx, 1, 10)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if note.Body != "" {
		t.Fatalf("note should be gone, got %q", note.Body)
	}
}
