package publish

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vitrinabot/bot/media"

	tele "gopkg.in/telebot.v4"
)

type sentAlbum struct {
	to    string
	album tele.Album
}

type fakeSender struct {
	calls []sentAlbum
	fail  map[string]error
}

func (f *fakeSender) SendAlbum(to tele.Recipient, a tele.Album, _ ...interface{}) ([]tele.Message, error) {
	f.calls = append(f.calls, sentAlbum{to: to.Recipient(), album: a})
	if err := f.fail[to.Recipient()]; err != nil {
		return nil, err
	}
	return nil, nil
}

func testPost() Post {
	return Post{
		Attachments: []media.Attachment{
			{Kind: media.KindPhoto, FileID: "p1"},
			{Kind: media.KindVideo, FileID: "v1"},
			{Kind: media.KindPhoto, FileID: "p2"},
		},
		Description:    "Widget",
		RetailPrice:    "100",
		WholesalePrice: "80",
	}
}

func caption(item tele.Inputtable) string {
	switch v := item.(type) {
	case *tele.Photo:
		return v.Caption
	case *tele.Video:
		return v.Caption
	}
	return ""
}

func fileID(item tele.Inputtable) string {
	switch v := item.(type) {
	case *tele.Photo:
		return v.FileID
	case *tele.Video:
		return v.FileID
	}
	return ""
}

func TestCaption(t *testing.T) {
	if got := Caption("Widget", "100"); got != "Widget\nЦена: 100 СОМ" {
		t.Fatalf("caption = %q", got)
	}
}

func TestBuildAlbum(t *testing.T) {
	album := BuildAlbum(testPost().Attachments, "cap")
	if len(album) != 3 {
		t.Fatalf("album size = %d, want 3", len(album))
	}
	if caption(album[0]) != "cap" {
		t.Fatalf("first caption = %q", caption(album[0]))
	}
	for i := 1; i < len(album); i++ {
		if caption(album[i]) != "" {
			t.Fatalf("element %d carries caption %q", i, caption(album[i]))
		}
	}
	if _, ok := album[1].(*tele.Video); !ok {
		t.Fatalf("element 1 is %T, want video", album[1])
	}
	want := []string{"p1", "v1", "p2"}
	for i, id := range want {
		if fileID(album[i]) != id {
			t.Fatalf("element %d file id = %s, want %s", i, fileID(album[i]), id)
		}
	}
}

func TestPublishBothChannels(t *testing.T) {
	sender := &fakeSender{}
	pub := New(sender, "@retail", "-100123")

	if err := pub.Publish(context.Background(), testPost()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(sender.calls) != 2 {
		t.Fatalf("sent %d albums, want 2", len(sender.calls))
	}
	if sender.calls[0].to != "@retail" || sender.calls[1].to != "-100123" {
		t.Fatalf("destinations = %s, %s", sender.calls[0].to, sender.calls[1].to)
	}
	if got := caption(sender.calls[0].album[0]); got != "Widget\nЦена: 100 СОМ" {
		t.Fatalf("retail caption = %q", got)
	}
	if got := caption(sender.calls[1].album[0]); got != "Widget\nЦена: 80 СОМ" {
		t.Fatalf("wholesale caption = %q", got)
	}
}

func TestPublishContinuesAfterFailure(t *testing.T) {
	sender := &fakeSender{fail: map[string]error{"@retail": errors.New("kicked from channel")}}
	pub := New(sender, "@retail", "@wholesale")

	err := pub.Publish(context.Background(), testPost())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(sender.calls) != 2 {
		t.Fatalf("sent %d albums, want both attempted", len(sender.calls))
	}
	if !strings.Contains(err.Error(), "retail channel") || !strings.Contains(err.Error(), "kicked from channel") {
		t.Fatalf("error = %v", err)
	}
}

func TestPublishJoinsBothFailures(t *testing.T) {
	sender := &fakeSender{fail: map[string]error{
		"@retail":    errors.New("retail down"),
		"@wholesale": errors.New("wholesale down"),
	}}
	pub := New(sender, "@retail", "@wholesale")

	err := pub.Publish(context.Background(), testPost())
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"retail down", "wholesale down"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %v does not mention %q", err, want)
		}
	}
}
