package auth

import "log/slog"

type authenticator struct {
	allowedChatID int64
}

// NewAuthenticator restricts the bot to a single group chat.
func NewAuthenticator(allowedChatID int64) *authenticator {
	slog.Info("telegram allowed chat ID", "chat_id", allowedChatID)

	return &authenticator{
		allowedChatID: allowedChatID,
	}
}

func (a *authenticator) IsAuthorized(chatID int64) bool {
	return chatID == a.allowedChatID
}
