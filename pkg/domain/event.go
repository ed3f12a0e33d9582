package domain

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Event is the part of a Telegram update the dispatcher works with.
type Event struct {
	UpdateID  int
	ChatID    int64
	MessageID int
	Text      string
}

// EventFromUpdate returns false for updates that carry no chat message,
// e.g. callback queries, edits or membership changes.
func EventFromUpdate(update *tgbotapi.Update) (Event, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return Event{}, false
	}

	return Event{
		UpdateID:  update.UpdateID,
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Text:      msg.Text,
	}, true
}
