// Package session holds the operator's in-flight intake state.
// All state is ephemeral and lives in process memory only.
package session

import "vitrinabot/bot/media"

// Phase is the current step of the intake conversation.
type Phase string

const (
	// PhaseAwaitingMedia accepts photo and video attachments.
	PhaseAwaitingMedia Phase = "awaiting_media"
	// PhaseAwaitingDescription expects the product description text.
	PhaseAwaitingDescription Phase = "awaiting_description"
	// PhaseAwaitingRetailPrice expects the retail price.
	PhaseAwaitingRetailPrice Phase = "awaiting_retail_price"
	// PhaseAwaitingWholesalePrice expects the wholesale price.
	PhaseAwaitingWholesalePrice Phase = "awaiting_wholesale_price"
)

// Session is one intake conversation. Fields are filled as the
// conversation advances through phases; Attachments keeps arrival order.
type Session struct {
	Phase       Phase
	Attachments []media.Attachment
	Description string
	RetailPrice string
}
