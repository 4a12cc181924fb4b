// Package media defines the attachment model and the per-operator buffer
// for attachments delivered as one Telegram media group.
package media

// Kind enumerates supported attachment kinds.
type Kind string

const (
	// KindPhoto marks a photo attachment.
	KindPhoto Kind = "photo"
	// KindVideo marks a video attachment.
	KindVideo Kind = "video"
)

// Attachment is one photo or video accepted into a session.
// FileID is the Telegram content handle. Attachments are immutable;
// accumulation order determines publish order and which element
// carries the caption.
type Attachment struct {
	Kind   Kind
	FileID string
}
