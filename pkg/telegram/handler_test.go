package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/media-telegram-bot/pkg/domain"
	"github.com/dskvich/media-telegram-bot/pkg/metrics"
)

const (
	allowedChatID int64 = -100500
	videoURL            = "https://cdn.example.com/abc123.mp4"
	wallpaperURL        = "https://walls.example.com/77.jpg"
	botUsername         = "media_bot"
)

type fakeSender struct {
	videos []domain.MediaReply
	photos []domain.MediaReply
	texts  []domain.TextReply

	videoErr error
	photoErr error
	textErr  error
}

func (f *fakeSender) SendVideo(_ context.Context, reply domain.MediaReply) error {
	f.videos = append(f.videos, reply)
	return f.videoErr
}

func (f *fakeSender) SendPhoto(_ context.Context, reply domain.MediaReply) error {
	f.photos = append(f.photos, reply)
	return f.photoErr
}

func (f *fakeSender) SendText(_ context.Context, reply domain.TextReply) error {
	f.texts = append(f.texts, reply)
	return f.textErr
}

func (f *fakeSender) calls() int {
	return len(f.videos) + len(f.photos) + len(f.texts)
}

type fakeResolver struct {
	videoErr error
}

func (f *fakeResolver) VideoURL(context.Context) (string, error) {
	if f.videoErr != nil {
		return "", f.videoErr
	}
	return videoURL, nil
}

func (f *fakeResolver) WallpaperURL(context.Context) string { return wallpaperURL }

type chatAuthenticator int64

func (a chatAuthenticator) IsAuthorized(chatID int64) bool { return chatID == int64(a) }

func newTestHandler(sender *fakeSender, resolver *fakeResolver) (*handler, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return NewHandler(sender, resolver, chatAuthenticator(allowedChatID), m, botUsername), m
}

func event(chatID int64, text string) domain.Event {
	return domain.Event{UpdateID: 1, ChatID: chatID, MessageID: 99, Text: text}
}

func TestHandleEvent_Start(t *testing.T) {
	sender := &fakeSender{}
	h, _ := newTestHandler(sender, &fakeResolver{})

	h.HandleEvent(context.Background(), event(allowedChatID, "/start"))

	require.Len(t, sender.texts, 1)
	assert.Equal(t, domain.TextReply{
		ChatID:           allowedChatID,
		ReplyToMessageID: 99,
		Text:             domain.GreetingMessage,
	}, sender.texts[0])
	assert.Equal(t, 1, sender.calls())
}

func TestHandleEvent_Help(t *testing.T) {
	sender := &fakeSender{}
	h, _ := newTestHandler(sender, &fakeResolver{})

	h.HandleEvent(context.Background(), event(allowedChatID, "/help"))

	require.Len(t, sender.texts, 1)
	text := sender.texts[0].Text

	commands := []string{"/start", "/help", "/video", "/wallpaper"}
	assert.ElementsMatch(t, commands, h.Commands())

	var found []string
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, "/") {
			found = append(found, word)
		}
	}
	assert.ElementsMatch(t, commands, found)
}

func TestHandleEvent_Video(t *testing.T) {
	sender := &fakeSender{}
	h, m := newTestHandler(sender, &fakeResolver{})

	h.HandleEvent(context.Background(), event(allowedChatID, "/video"))

	require.Len(t, sender.videos, 1)
	assert.Equal(t, domain.MediaReply{
		ChatID:           allowedChatID,
		ReplyToMessageID: 99,
		URL:              videoURL,
		Caption:          domain.VideoCaption,
	}, sender.videos[0])
	assert.Equal(t, 1, sender.calls())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("/video")))
}

func TestHandleEvent_VideoSendFails(t *testing.T) {
	sender := &fakeSender{videoErr: errors.New("Bad Request: failed to get HTTP URL content")}
	h, m := newTestHandler(sender, &fakeResolver{})

	h.HandleEvent(context.Background(), event(allowedChatID, "/video"))

	assert.Len(t, sender.videos, 1, "send must not be retried")
	require.Len(t, sender.texts, 1)
	assert.Contains(t, sender.texts[0].Text, "Couldn't send the video")
	assert.Equal(t, allowedChatID, sender.texts[0].ChatID)
	assert.Equal(t, 99, sender.texts[0].ReplyToMessageID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MediaSendFailures.WithLabelValues("video")))
}

func TestHandleEvent_VideoResolveFails(t *testing.T) {
	sender := &fakeSender{}
	h, _ := newTestHandler(sender, &fakeResolver{videoErr: domain.ErrEmptyCatalog})

	h.HandleEvent(context.Background(), event(allowedChatID, "/video"))

	assert.Empty(t, sender.videos)
	require.Len(t, sender.texts, 1)
	assert.Equal(t, domain.VideoFailedMessage, sender.texts[0].Text)
}

func TestHandleEvent_FallbackFailureIsDropped(t *testing.T) {
	sender := &fakeSender{
		videoErr: errors.New("timeout"),
		textErr:  errors.New("timeout"),
	}
	h, _ := newTestHandler(sender, &fakeResolver{})

	assert.NotPanics(t, func() {
		h.HandleEvent(context.Background(), event(allowedChatID, "/video"))
	})
	assert.Len(t, sender.videos, 1)
	assert.Len(t, sender.texts, 1)
}

func TestHandleEvent_Wallpaper(t *testing.T) {
	sender := &fakeSender{}
	h, _ := newTestHandler(sender, &fakeResolver{})

	h.HandleEvent(context.Background(), event(allowedChatID, "/wallpaper"))

	require.Len(t, sender.photos, 1)
	assert.Equal(t, domain.MediaReply{
		ChatID:           allowedChatID,
		ReplyToMessageID: 99,
		URL:              wallpaperURL,
		Caption:          domain.WallpaperCaption,
	}, sender.photos[0])
	assert.Equal(t, 1, sender.calls())
}

func TestHandleEvent_WallpaperSendFails(t *testing.T) {
	sender := &fakeSender{photoErr: errors.New("connection reset")}
	h, m := newTestHandler(sender, &fakeResolver{})

	h.HandleEvent(context.Background(), event(allowedChatID, "/wallpaper"))

	assert.Len(t, sender.photos, 1)
	require.Len(t, sender.texts, 1)
	assert.Equal(t, domain.WallpaperFailedMessage, sender.texts[0].Text)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MediaSendFailures.WithLabelValues("wallpaper")))
}

func TestHandleEvent_UnauthorizedChat(t *testing.T) {
	for _, chatID := range []int64{0, -1, allowedChatID - 1, allowedChatID + 1, 123456} {
		for _, text := range []string{"/start", "/help", "/video", "/wallpaper"} {
			sender := &fakeSender{}
			h, m := newTestHandler(sender, &fakeResolver{})

			h.HandleEvent(context.Background(), event(chatID, text))

			assert.Zero(t, sender.calls(), "chat %d, %s", chatID, text)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.UnauthorizedEvents))
		}
	}
}

func TestHandleEvent_IgnoredTexts(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"hello",
		"video",
		"/",
		"/videos",
		"/unknown",
		"please /video",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			sender := &fakeSender{}
			h, _ := newTestHandler(sender, &fakeResolver{})

			h.HandleEvent(context.Background(), event(allowedChatID, text))

			assert.Zero(t, sender.calls())
		})
	}
}

func TestHandleEvent_CommandAddressedToBot(t *testing.T) {
	tests := []struct {
		text      string
		wantCalls int
	}{
		{"/video@media_bot", 1},
		{"/video@Media_Bot", 1},
		{"/video@SomeOtherBot", 0},
		{"/help@SomeOtherBot", 0},
		{"/start@SomeOtherBot", 0},
		{"/wallpaper@media_bot_two", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			sender := &fakeSender{}
			h, _ := newTestHandler(sender, &fakeResolver{})

			h.HandleEvent(context.Background(), event(allowedChatID, tt.text))

			assert.Equal(t, tt.wantCalls, sender.calls())
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"/video", "/video", true},
		{"  /video  ", "/video", true},
		{"/Video", "/video", true},
		{"/video@media_bot", "/video", true},
		{"/video@MEDIA_BOT", "/video", true},
		{"/video@RandomMediaBot", "", false},
		{"/help@SomeOtherBot", "", false},
		{"/wallpaper now please", "/wallpaper", true},
		{"/wallpaper@media_bot now", "/wallpaper", true},
		{"/@media_bot", "/", false},
		{"/@bot", "", false},
		{"/", "/", false},
		{"video", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parseCommand(tt.text, botUsername)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
