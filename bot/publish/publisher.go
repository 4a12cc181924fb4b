// Package publish assembles finished intakes into Telegram albums and
// delivers them to the retail and wholesale channels.
package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vitrinabot/bot/media"
	"vitrinabot/core/logger"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Post is a completed intake ready for publication.
type Post struct {
	Attachments    []media.Attachment
	Description    string
	RetailPrice    string
	WholesalePrice string
}

// AlbumSender is the slice of the bot API the publisher needs.
// *tele.Bot satisfies it.
type AlbumSender interface {
	SendAlbum(to tele.Recipient, a tele.Album, opts ...interface{}) ([]tele.Message, error)
}

// Channel identifies a destination by numeric chat id or @username.
type Channel string

// Recipient implements tele.Recipient.
func (ch Channel) Recipient() string { return string(ch) }

// Publisher sends posts to the two fixed destination channels.
type Publisher struct {
	sender    AlbumSender
	retail    Channel
	wholesale Channel
}

// New constructs a Publisher delivering to the given channels.
func New(sender AlbumSender, retail, wholesale string) *Publisher {
	return &Publisher{
		sender:    sender,
		retail:    Channel(retail),
		wholesale: Channel(wholesale),
	}
}

// Publish sends the post to both channels. Each destination gets its own
// album carrying the destination's price in the caption. Both deliveries
// are attempted regardless of each other's outcome; failures are joined
// into the returned error.
func (p *Publisher) Publish(ctx context.Context, post Post) error {
	var errs []error
	if err := p.deliver(ctx, p.retail, "retail", post.Attachments, Caption(post.Description, post.RetailPrice)); err != nil {
		errs = append(errs, fmt.Errorf("retail channel: %w", err))
	}
	if err := p.deliver(ctx, p.wholesale, "wholesale", post.Attachments, Caption(post.Description, post.WholesalePrice)); err != nil {
		errs = append(errs, fmt.Errorf("wholesale channel: %w", err))
	}
	return errors.Join(errs...)
}

func (p *Publisher) deliver(ctx context.Context, ch Channel, name string, attachments []media.Attachment, caption string) error {
	start := time.Now()
	_, err := p.sender.SendAlbum(ch, BuildAlbum(attachments, caption))
	logger.LogEvent(ctx, logger.PUB, logger.LevelFor(err), "publish.send",
		slog.String("destination", name),
		slog.Int("attachments", len(attachments)),
		slog.String("status", logger.Status(err)),
		slog.Duration("duration", logger.Took(start)),
	)
	return err
}

// Caption renders the album caption for one destination.
func Caption(description, price string) string {
	return fmt.Sprintf("%s\nЦена: %s СОМ", description, price)
}

// BuildAlbum converts attachments into a Telegram album in arrival order.
// Telegram shows an album's caption from its first element, so only the
// first one is captioned.
func BuildAlbum(attachments []media.Attachment, caption string) tele.Album {
	album := make(tele.Album, 0, len(attachments))
	for i, att := range attachments {
		var text string
		if i == 0 {
			text = caption
		}
		switch att.Kind {
		case media.KindVideo:
			album = append(album, &tele.Video{File: tele.File{FileID: att.FileID}, Caption: text})
		default:
			album = append(album, &tele.Photo{File: tele.File{FileID: att.FileID}, Caption: text})
		}
	}
	return album
}
