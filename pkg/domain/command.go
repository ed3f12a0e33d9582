package domain

const (
	CommandStart     = "/start"
	CommandHelp      = "/help"
	CommandVideo     = "/video"
	CommandWallpaper = "/wallpaper"
)

const (
	VideoExtension     = ".mp4"
	WallpaperExtension = ".jpg"

	MinWallpaperID = 1
	MaxWallpaperID = 30999
)

const (
	GreetingMessage = "👋 Hello! Send /video for videos or /wallpaper for wallpapers."

	HelpMessage = `Available commands:
/start - Greet the bot
/help - Show this list
/video - Get a random video
/wallpaper - Get a random wallpaper`

	VideoCaption     = "Video by @rolexpmv"
	WallpaperCaption = "Wallpaper by @rolexpmv"

	VideoFailedMessage     = "⚠️ Couldn't send the video. Maybe it's too large or unavailable."
	WallpaperFailedMessage = "⚠️ Couldn't send the wallpaper right now."
)
