package session

import (
	"testing"

	"vitrinabot/bot/media"
)

func TestStoreBeginOpensFreshSession(t *testing.T) {
	store := NewStore()
	sess := store.Begin(1)
	if sess.Phase != PhaseAwaitingMedia {
		t.Fatalf("phase = %s, want %s", sess.Phase, PhaseAwaitingMedia)
	}
	if len(sess.Attachments) != 0 {
		t.Fatalf("new session has %d attachments", len(sess.Attachments))
	}

	got, ok := store.Get(1)
	if !ok || got != sess {
		t.Fatal("Get did not return the started session")
	}
}

func TestStoreBeginReplacesExisting(t *testing.T) {
	store := NewStore()
	old := store.Begin(1)
	old.Phase = PhaseAwaitingRetailPrice
	old.Attachments = append(old.Attachments, media.Attachment{Kind: media.KindPhoto, FileID: "p"})

	fresh := store.Begin(1)
	if fresh == old {
		t.Fatal("Begin returned the old session")
	}
	if fresh.Phase != PhaseAwaitingMedia || len(fresh.Attachments) != 0 {
		t.Fatalf("replacement session not fresh: %+v", fresh)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore()
	if _, ok := store.Get(9); ok {
		t.Fatal("Get reported a session for an idle operator")
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Begin(1)
	store.Clear(1)
	if _, ok := store.Get(1); ok {
		t.Fatal("session survived Clear")
	}
	store.Clear(1) // clearing twice is a no-op
}
