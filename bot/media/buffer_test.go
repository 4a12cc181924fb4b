package media

import "testing"

func TestBufferAppendDrainOrder(t *testing.T) {
	buf := NewBuffer()
	buf.Append(1, Attachment{Kind: KindPhoto, FileID: "p1"})
	buf.Append(1, Attachment{Kind: KindVideo, FileID: "v1"})
	buf.Append(1, Attachment{Kind: KindPhoto, FileID: "p2"})

	batch := buf.Drain(1)
	if len(batch) != 3 {
		t.Fatalf("drained %d attachments, want 3", len(batch))
	}
	want := []string{"p1", "v1", "p2"}
	for i, id := range want {
		if batch[i].FileID != id {
			t.Fatalf("batch[%d] = %s, want %s", i, batch[i].FileID, id)
		}
	}
	if again := buf.Drain(1); again != nil {
		t.Fatalf("second drain returned %d attachments, want none", len(again))
	}
}

func TestBufferDrainEmpty(t *testing.T) {
	buf := NewBuffer()
	if batch := buf.Drain(5); batch != nil {
		t.Fatalf("drain of empty buffer returned %v", batch)
	}
}

func TestBufferDiscard(t *testing.T) {
	buf := NewBuffer()
	buf.Append(1, Attachment{Kind: KindPhoto, FileID: "p1"})
	buf.Discard(1)
	if got := buf.Len(1); got != 0 {
		t.Fatalf("len after discard = %d, want 0", got)
	}
	if batch := buf.Drain(1); batch != nil {
		t.Fatalf("drain after discard returned %v", batch)
	}
}

func TestBufferIsolatesOperators(t *testing.T) {
	buf := NewBuffer()
	buf.Append(1, Attachment{Kind: KindPhoto, FileID: "a"})
	buf.Append(2, Attachment{Kind: KindPhoto, FileID: "b"})

	if got := buf.Len(1); got != 1 {
		t.Fatalf("operator 1 len = %d, want 1", got)
	}
	batch := buf.Drain(2)
	if len(batch) != 1 || batch[0].FileID != "b" {
		t.Fatalf("operator 2 drained %v", batch)
	}
	if got := buf.Len(1); got != 1 {
		t.Fatalf("operator 1 len after foreign drain = %d, want 1", got)
	}
}
