package domain

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

type MediaReply struct {
	ChatID           int64
	ReplyToMessageID int
	URL              string
	Caption          string
}

func (m *MediaReply) ToVideoMessage() tgbotapi.Chattable {
	msg := tgbotapi.NewVideo(m.ChatID, tgbotapi.FileURL(m.URL))
	msg.Caption = m.Caption
	msg.ReplyToMessageID = m.ReplyToMessageID

	return msg
}

func (m *MediaReply) ToPhotoMessage() tgbotapi.Chattable {
	msg := tgbotapi.NewPhoto(m.ChatID, tgbotapi.FileURL(m.URL))
	msg.Caption = m.Caption
	msg.ReplyToMessageID = m.ReplyToMessageID

	return msg
}
