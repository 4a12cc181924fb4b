package media

import "sync"

// Buffer holds attachments that arrived as part of a media group but are not
// yet merged into the operator's session. Telegram delivers a media group as
// separate updates sharing an album id, so items are parked here until the
// operator signals completion. At most one pending batch exists per operator.
type Buffer struct {
	mu      sync.Mutex
	pending map[int64][]Attachment
}

// NewBuffer constructs an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{pending: make(map[int64][]Attachment)}
}

// Append adds an attachment to the operator's pending batch,
// creating the batch if absent.
func (b *Buffer) Append(operatorID int64, att Attachment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[operatorID] = append(b.pending[operatorID], att)
}

// Drain returns the operator's pending batch in arrival order and removes it.
// It returns nil when no batch exists.
func (b *Buffer) Drain(operatorID int64) []Attachment {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.pending[operatorID]
	delete(b.pending, operatorID)
	return batch
}

// Discard drops the operator's pending batch, if any.
func (b *Buffer) Discard(operatorID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, operatorID)
}

// Len reports the number of pending attachments for the operator.
func (b *Buffer) Len(operatorID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending[operatorID])
}
