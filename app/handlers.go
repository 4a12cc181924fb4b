package app

import (
	"vitrinabot/bot/intake"
	"vitrinabot/bot/media"
	tghelpers "vitrinabot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "start")
	return a.send(c, a.machine.Start(ctx, c.Sender().ID))
}

func (a *App) handleFinish(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "finish")
	return a.send(c, a.machine.Finish(ctx, c.Sender().ID))
}

// handleText routes reply-keyboard presses to their commands and hands
// everything else to the intake machine.
func (a *App) handleText(c tele.Context) error {
	switch c.Text() {
	case ButtonStart:
		return a.handleStart(c)
	case ButtonFinish:
		return a.handleFinish(c)
	}
	ctx := tghelpers.WithHandler(c, "text")
	return a.send(c, a.machine.Text(ctx, c.Sender().ID, c.Text()))
}

func (a *App) handleMedia(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "media")
	msg := c.Message()

	var att media.Attachment
	switch {
	case msg.Photo != nil:
		att = media.Attachment{Kind: media.KindPhoto, FileID: msg.Photo.FileID}
	case msg.Video != nil:
		att = media.Attachment{Kind: media.KindVideo, FileID: msg.Video.FileID}
	default:
		return a.send(c, a.machine.Unsupported(ctx, c.Sender().ID))
	}

	return a.send(c, a.machine.Media(ctx, c.Sender().ID, att, msg.AlbumID))
}

func (a *App) handleUnsupported(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "unsupported")
	return a.send(c, a.machine.Unsupported(ctx, c.Sender().ID))
}

func (a *App) send(c tele.Context, reply intake.Reply) error {
	if reply.Text == "" {
		return nil
	}
	return tghelpers.SendKeyboard(c, reply.Text, a.menu)
}
