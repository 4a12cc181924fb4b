// Package intake drives the product intake conversation: collect media,
// then a description, then two prices, then hand off to the publisher.
package intake

import (
	"context"
	"fmt"
	"strings"

	"vitrinabot/bot/media"
	"vitrinabot/bot/publish"
	"vitrinabot/bot/session"
	"vitrinabot/core/logger"

	"log/slog"
)

const component = "intake"

// Publisher delivers a completed post to the destination channels.
type Publisher interface {
	Publish(ctx context.Context, post publish.Post) error
}

// Reply is what the operator should be told in response to an update.
// An empty Text means the update was consumed silently.
type Reply struct {
	Text string
}

// Machine is the intake state machine. It owns all conversation
// transitions; transport concerns stay with the caller.
type Machine struct {
	sessions *session.Store
	buffer   *media.Buffer
	pub      Publisher
}

// NewMachine constructs a Machine over the given stores.
func NewMachine(sessions *session.Store, buffer *media.Buffer) *Machine {
	return &Machine{sessions: sessions, buffer: buffer}
}

// BindPublisher attaches the publisher. It must be called before the
// first update is processed.
func (m *Machine) BindPublisher(pub Publisher) {
	m.pub = pub
}

// Start opens a fresh session, discarding any in-flight one together
// with its unmerged media-group batch.
func (m *Machine) Start(ctx context.Context, operatorID int64) Reply {
	m.buffer.Discard(operatorID)
	m.sessions.Begin(operatorID)
	logger.Debug(ctx, component, "session.begin",
		slog.String("phase", string(session.PhaseAwaitingMedia)),
	)
	return Reply{Text: promptStart}
}

// Media handles an incoming photo or video. Attachments from a media
// group are parked in the buffer and acknowledged later in one piece;
// standalone attachments join the session immediately and are counted
// back to the operator.
func (m *Machine) Media(ctx context.Context, operatorID int64, att media.Attachment, albumID string) Reply {
	sess, ok := m.sessions.Get(operatorID)
	if !ok || sess.Phase != session.PhaseAwaitingMedia {
		logger.Debug(ctx, component, "media.ignore",
			slog.String("kind", string(att.Kind)),
			slog.String("album_id", albumID),
		)
		return Reply{}
	}

	if albumID != "" {
		m.buffer.Append(operatorID, att)
		logger.Debug(ctx, component, "media.buffer",
			slog.String("kind", string(att.Kind)),
			slog.String("album_id", albumID),
			slog.Int("attachments", m.buffer.Len(operatorID)),
		)
		return Reply{}
	}

	sess.Attachments = append(sess.Attachments, att)
	logger.Debug(ctx, component, "media.accept",
		slog.String("kind", string(att.Kind)),
		slog.Int("attachments", len(sess.Attachments)),
	)
	return Reply{Text: mediaAddedText(string(att.Kind), len(sess.Attachments))}
}

// Finish closes media intake. Any buffered media-group batch is merged
// after the standalone attachments, then the conversation advances to
// the description phase. With nothing collected the phase stays put.
func (m *Machine) Finish(ctx context.Context, operatorID int64) Reply {
	sess, ok := m.sessions.Get(operatorID)
	if !ok {
		return Reply{Text: promptNoMedia}
	}
	if sess.Phase != session.PhaseAwaitingMedia {
		return Reply{}
	}

	if batch := m.buffer.Drain(operatorID); len(batch) > 0 {
		sess.Attachments = append(sess.Attachments, batch...)
	}
	if len(sess.Attachments) == 0 {
		return Reply{Text: promptNoMedia}
	}

	sess.Phase = session.PhaseAwaitingDescription
	logger.Debug(ctx, component, "phase.advance",
		slog.String("phase", string(sess.Phase)),
		slog.Int("attachments", len(sess.Attachments)),
	)
	return Reply{Text: mediaAcceptedText(len(sess.Attachments))}
}

// Text handles free-form operator text according to the current phase.
func (m *Machine) Text(ctx context.Context, operatorID int64, text string) Reply {
	sess, ok := m.sessions.Get(operatorID)
	if !ok {
		return Reply{}
	}

	switch sess.Phase {
	case session.PhaseAwaitingMedia:
		return Reply{Text: promptMediaOnly}

	case session.PhaseAwaitingDescription:
		if strings.TrimSpace(text) == "" {
			return Reply{Text: promptDescriptionEmpty}
		}
		sess.Description = text
		sess.Phase = session.PhaseAwaitingRetailPrice
		logger.Debug(ctx, component, "phase.advance",
			slog.String("phase", string(sess.Phase)),
		)
		return Reply{Text: promptRetailPrice}

	case session.PhaseAwaitingRetailPrice:
		if !digitsOnly(text) {
			return Reply{Text: promptPriceDigits}
		}
		sess.RetailPrice = text
		sess.Phase = session.PhaseAwaitingWholesalePrice
		logger.Debug(ctx, component, "phase.advance",
			slog.String("phase", string(sess.Phase)),
		)
		return Reply{Text: promptWholesalePrice}

	case session.PhaseAwaitingWholesalePrice:
		if !digitsOnly(text) {
			return Reply{Text: promptPriceDigits}
		}
		post := publish.Post{
			Attachments:    sess.Attachments,
			Description:    sess.Description,
			RetailPrice:    sess.RetailPrice,
			WholesalePrice: text,
		}
		// The session ends here whatever the publish outcome; a failed
		// post is re-entered from scratch.
		m.sessions.Clear(operatorID)

		err := m.publish(ctx, post)
		logger.Event(ctx, component, logger.LevelFor(err), "intake.complete",
			slog.Int("attachments", len(post.Attachments)),
			slog.String("status", logger.Status(err)),
		)
		if err != nil {
			return Reply{Text: fmt.Sprintf(promptPublishFailed, err)}
		}
		return Reply{Text: promptPublished}
	}

	return Reply{}
}

// Unsupported handles message kinds the intake never accepts, such as
// stickers or documents. During media intake the operator is nudged
// toward photo and video; otherwise the update is ignored.
func (m *Machine) Unsupported(ctx context.Context, operatorID int64) Reply {
	sess, ok := m.sessions.Get(operatorID)
	if !ok || sess.Phase != session.PhaseAwaitingMedia {
		return Reply{}
	}
	return Reply{Text: promptMediaOnly}
}

func (m *Machine) publish(ctx context.Context, post publish.Post) error {
	if m.pub == nil {
		return fmt.Errorf("intake: no publisher bound")
	}
	return m.pub.Publish(ctx, post)
}

// digitsOnly reports whether s is a non-empty ASCII digit string.
// Signs, spaces, separators and decimal points all fail the check.
func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
