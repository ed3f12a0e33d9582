package domain

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

type TextReply struct {
	ChatID           int64
	ReplyToMessageID int
	Text             string
}

func (t *TextReply) ToChatMessage() tgbotapi.Chattable {
	msg := tgbotapi.NewMessage(t.ChatID, t.Text)
	msg.ReplyToMessageID = t.ReplyToMessageID

	return msg
}
