package intake

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vitrinabot/bot/media"
	"vitrinabot/bot/publish"
	"vitrinabot/bot/session"
)

type fakePublisher struct {
	posts []publish.Post
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, post publish.Post) error {
	f.posts = append(f.posts, post)
	return f.err
}

func newTestMachine() (*Machine, *session.Store, *media.Buffer, *fakePublisher) {
	store := session.NewStore()
	buf := media.NewBuffer()
	pub := &fakePublisher{}
	m := NewMachine(store, buf)
	m.BindPublisher(pub)
	return m, store, buf, pub
}

func photo(id string) media.Attachment {
	return media.Attachment{Kind: media.KindPhoto, FileID: id}
}

const operator int64 = 77

func TestIntakeHappyPath(t *testing.T) {
	m, _, _, pub := newTestMachine()
	ctx := context.Background()

	if got := m.Start(ctx, operator); got.Text != promptStart {
		t.Fatalf("start reply = %q", got.Text)
	}
	if got := m.Media(ctx, operator, photo("p1"), ""); !strings.Contains(got.Text, "1") {
		t.Fatalf("first media reply = %q, want running count 1", got.Text)
	}
	if got := m.Media(ctx, operator, photo("p2"), ""); !strings.Contains(got.Text, "2") {
		t.Fatalf("second media reply = %q, want running count 2", got.Text)
	}
	if got := m.Finish(ctx, operator); !strings.Contains(got.Text, "2") {
		t.Fatalf("finish reply = %q, want collected count 2", got.Text)
	}
	if got := m.Text(ctx, operator, "Widget"); got.Text != promptRetailPrice {
		t.Fatalf("description reply = %q", got.Text)
	}
	if got := m.Text(ctx, operator, "100"); got.Text != promptWholesalePrice {
		t.Fatalf("retail price reply = %q", got.Text)
	}
	if got := m.Text(ctx, operator, "80"); got.Text != promptPublished {
		t.Fatalf("wholesale price reply = %q", got.Text)
	}

	if len(pub.posts) != 1 {
		t.Fatalf("published %d posts, want 1", len(pub.posts))
	}
	post := pub.posts[0]
	if post.Description != "Widget" || post.RetailPrice != "100" || post.WholesalePrice != "80" {
		t.Fatalf("post = %+v", post)
	}
	if len(post.Attachments) != 2 || post.Attachments[0].FileID != "p1" || post.Attachments[1].FileID != "p2" {
		t.Fatalf("attachments = %+v", post.Attachments)
	}
}

func TestBatchMergedAfterStandalone(t *testing.T) {
	m, _, _, pub := newTestMachine()
	ctx := context.Background()

	m.Start(ctx, operator)
	m.Media(ctx, operator, photo("s1"), "")
	if got := m.Media(ctx, operator, photo("g1"), "album-1"); got.Text != "" {
		t.Fatalf("grouped media reply = %q, want silent", got.Text)
	}
	m.Media(ctx, operator, photo("g2"), "album-1")
	m.Media(ctx, operator, photo("s2"), "")

	if got := m.Finish(ctx, operator); !strings.Contains(got.Text, "4") {
		t.Fatalf("finish reply = %q, want collected count 4", got.Text)
	}
	m.Text(ctx, operator, "Widget")
	m.Text(ctx, operator, "100")
	m.Text(ctx, operator, "80")

	if len(pub.posts) != 1 {
		t.Fatalf("published %d posts, want 1", len(pub.posts))
	}
	got := pub.posts[0].Attachments
	want := []string{"s1", "s2", "g1", "g2"}
	if len(got) != len(want) {
		t.Fatalf("attachment count = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].FileID != id {
			t.Fatalf("attachments[%d] = %s, want %s", i, got[i].FileID, id)
		}
	}
}

func TestFinishWithoutMediaKeepsPhase(t *testing.T) {
	m, store, _, _ := newTestMachine()
	ctx := context.Background()

	m.Start(ctx, operator)
	if got := m.Finish(ctx, operator); got.Text != promptNoMedia {
		t.Fatalf("finish reply = %q", got.Text)
	}
	sess, ok := store.Get(operator)
	if !ok || sess.Phase != session.PhaseAwaitingMedia {
		t.Fatalf("phase after empty finish = %v", sess)
	}

	// Media intake is still open.
	if got := m.Media(ctx, operator, photo("p1"), ""); got.Text == "" {
		t.Fatal("media rejected after empty finish")
	}
}

func TestFinishWithoutSession(t *testing.T) {
	m, _, _, _ := newTestMachine()
	if got := m.Finish(context.Background(), operator); got.Text != promptNoMedia {
		t.Fatalf("idle finish reply = %q", got.Text)
	}
}

func TestFinishIgnoredAfterMediaPhase(t *testing.T) {
	m, store, _, _ := newTestMachine()
	ctx := context.Background()

	m.Start(ctx, operator)
	m.Media(ctx, operator, photo("p1"), "")
	m.Finish(ctx, operator)

	if got := m.Finish(ctx, operator); got.Text != "" {
		t.Fatalf("repeated finish reply = %q, want silent", got.Text)
	}
	sess, _ := store.Get(operator)
	if sess.Phase != session.PhaseAwaitingDescription {
		t.Fatalf("phase = %s, want %s", sess.Phase, session.PhaseAwaitingDescription)
	}
}

func TestPriceValidation(t *testing.T) {
	rejected := []string{"", " ", "abc", "12a", "12.5", "12,5", "-5", "+5", "1 000", "１００"}
	for _, input := range rejected {
		t.Run("reject_"+input, func(t *testing.T) {
			m, store, _, _ := newTestMachine()
			ctx := context.Background()
			m.Start(ctx, operator)
			m.Media(ctx, operator, photo("p1"), "")
			m.Finish(ctx, operator)
			m.Text(ctx, operator, "Widget")

			if got := m.Text(ctx, operator, input); got.Text != promptPriceDigits {
				t.Fatalf("reply for %q = %q, want digits prompt", input, got.Text)
			}
			sess, _ := store.Get(operator)
			if sess.Phase != session.PhaseAwaitingRetailPrice {
				t.Fatalf("phase advanced on invalid price %q", input)
			}
		})
	}

	accepted := []string{"0", "007", "100"}
	for _, input := range accepted {
		t.Run("accept_"+input, func(t *testing.T) {
			m, store, _, _ := newTestMachine()
			ctx := context.Background()
			m.Start(ctx, operator)
			m.Media(ctx, operator, photo("p1"), "")
			m.Finish(ctx, operator)
			m.Text(ctx, operator, "Widget")

			if got := m.Text(ctx, operator, input); got.Text != promptWholesalePrice {
				t.Fatalf("reply for %q = %q, want wholesale prompt", input, got.Text)
			}
			sess, _ := store.Get(operator)
			if sess.RetailPrice != input {
				t.Fatalf("stored retail price = %q, want %q", sess.RetailPrice, input)
			}
		})
	}
}

func TestDescriptionMustNotBeBlank(t *testing.T) {
	m, store, _, _ := newTestMachine()
	ctx := context.Background()

	m.Start(ctx, operator)
	m.Media(ctx, operator, photo("p1"), "")
	m.Finish(ctx, operator)

	if got := m.Text(ctx, operator, "   "); got.Text != promptDescriptionEmpty {
		t.Fatalf("blank description reply = %q", got.Text)
	}
	sess, _ := store.Get(operator)
	if sess.Phase != session.PhaseAwaitingDescription {
		t.Fatal("phase advanced on blank description")
	}
}

func TestTextDuringMediaPhase(t *testing.T) {
	m, _, _, _ := newTestMachine()
	ctx := context.Background()

	m.Start(ctx, operator)
	if got := m.Text(ctx, operator, "hello"); got.Text != promptMediaOnly {
		t.Fatalf("text reply = %q", got.Text)
	}
}

func TestStartResetsMidFlow(t *testing.T) {
	m, store, buf, pub := newTestMachine()
	ctx := context.Background()

	m.Start(ctx, operator)
	m.Media(ctx, operator, photo("old"), "")
	m.Media(ctx, operator, photo("grp"), "album-1")
	m.Finish(ctx, operator)
	m.Text(ctx, operator, "Old widget")

	m.Start(ctx, operator)
	sess, ok := store.Get(operator)
	if !ok || sess.Phase != session.PhaseAwaitingMedia || len(sess.Attachments) != 0 {
		t.Fatalf("session after restart = %+v", sess)
	}
	if buf.Len(operator) != 0 {
		t.Fatal("pending batch survived restart")
	}

	m.Media(ctx, operator, photo("new"), "")
	m.Finish(ctx, operator)
	m.Text(ctx, operator, "New widget")
	m.Text(ctx, operator, "200")
	m.Text(ctx, operator, "150")

	if len(pub.posts) != 1 {
		t.Fatalf("published %d posts, want 1", len(pub.posts))
	}
	post := pub.posts[0]
	if post.Description != "New widget" || len(post.Attachments) != 1 || post.Attachments[0].FileID != "new" {
		t.Fatalf("post after restart = %+v", post)
	}
}

func TestPublishFailureEndsSession(t *testing.T) {
	m, store, _, pub := newTestMachine()
	pub.err = errors.New("channel unavailable")
	ctx := context.Background()

	m.Start(ctx, operator)
	m.Media(ctx, operator, photo("p1"), "")
	m.Finish(ctx, operator)
	m.Text(ctx, operator, "Widget")
	m.Text(ctx, operator, "100")

	got := m.Text(ctx, operator, "80")
	if !strings.Contains(got.Text, "channel unavailable") {
		t.Fatalf("failure reply = %q, want error detail", got.Text)
	}
	if _, ok := store.Get(operator); ok {
		t.Fatal("session survived failed publish")
	}
	if reply := m.Finish(ctx, operator); reply.Text != promptNoMedia {
		t.Fatalf("finish after failure = %q, want idle reply", reply.Text)
	}
}

func TestMediaIgnoredWithoutSession(t *testing.T) {
	m, _, buf, _ := newTestMachine()
	ctx := context.Background()

	if got := m.Media(ctx, operator, photo("p1"), "album-1"); got.Text != "" {
		t.Fatalf("media without session replied %q", got.Text)
	}
	if buf.Len(operator) != 0 {
		t.Fatal("media without session was buffered")
	}
}

func TestMediaIgnoredAfterMediaPhase(t *testing.T) {
	m, store, _, _ := newTestMachine()
	ctx := context.Background()

	m.Start(ctx, operator)
	m.Media(ctx, operator, photo("p1"), "")
	m.Finish(ctx, operator)

	if got := m.Media(ctx, operator, photo("late"), ""); got.Text != "" {
		t.Fatalf("late media replied %q", got.Text)
	}
	sess, _ := store.Get(operator)
	if len(sess.Attachments) != 1 {
		t.Fatalf("late media was appended: %+v", sess.Attachments)
	}
}

func TestUnsupportedKinds(t *testing.T) {
	m, _, _, _ := newTestMachine()
	ctx := context.Background()

	if got := m.Unsupported(ctx, operator); got.Text != "" {
		t.Fatalf("idle unsupported replied %q", got.Text)
	}
	m.Start(ctx, operator)
	if got := m.Unsupported(ctx, operator); got.Text != promptMediaOnly {
		t.Fatalf("unsupported during media phase = %q", got.Text)
	}
	m.Media(ctx, operator, photo("p1"), "")
	m.Finish(ctx, operator)
	if got := m.Unsupported(ctx, operator); got.Text != "" {
		t.Fatalf("unsupported off phase replied %q", got.Text)
	}
}
