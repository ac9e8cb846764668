package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ideogram-ai-bot/internal/params"
	"ideogram-ai-bot/internal/pipeline"
	"ideogram-ai-bot/internal/session"
	"ideogram-ai-bot/internal/telegram"
)

type Options struct {
	Telegram *telegram.Client
	Pipeline *pipeline.Pipeline
	Sessions *session.Store
	Logger   *slog.Logger
}

type Handler struct {
	tg       *telegram.Client
	pipe     *pipeline.Pipeline
	sessions *session.Store
	logger   *slog.Logger
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tg:       opts.Telegram,
		pipe:     opts.Pipeline,
		sessions: opts.Sessions,
		logger:   logger,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) error {
	if update.Message == nil {
		return nil
	}

	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.IsCommand() {
		return h.handleCommand(ctx, chatID, userID, msg)
	}

	if msg.Text != "" {
		return h.handleGenerate(ctx, chatID, userID, msg.Text)
	}

	return nil
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, userID int64, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return h.tg.SendText(chatID,
			"🎨 Ideogram AI Bot\n\n"+
				"Send me a description and I will generate an image.\n\n"+
				"Commands:\n"+
				"/start - Start the bot\n"+
				"/help - Usage and flags\n"+
				"/options - Available styles, aspect ratios and resolutions\n"+
				"/image <description> - Generate an image\n"+
				"/reset - Forget your saved style/aspect/resolution",
		)
	case "help":
		return h.tg.SendText(chatID,
			"🎨 Usage\n\n"+
				"Type a description, optionally with flags:\n"+
				"  a lighthouse at dusk --style Realistic --aspect 16:9\n"+
				"  \"neon city\" --res 1280x720\n\n"+
				"--style <name> - visual style (fuzzy matched)\n"+
				"--aspect <w:h> - aspect ratio\n"+
				"--res <WxH> - exact resolution; overrides the aspect-derived size\n\n"+
				"Invalid values quietly fall back to your saved preferences or the defaults. "+
				"Flags you set are remembered per user until /reset.",
		)
	case "options":
		return h.tg.SendText(chatID, optionsText())
	case "reset":
		h.sessions.Clear(userID)
		return h.tg.SendText(chatID, "✅ Preferences cleared.")
	case "image":
		prompt := strings.TrimSpace(msg.CommandArguments())
		if prompt == "" {
			return h.tg.SendText(chatID, "❌ Please provide a description.\nExample: /image a banana in space --style Anime")
		}
		return h.handleGenerate(ctx, chatID, userID, prompt)
	default:
		return h.tg.SendText(chatID, "❌ Unknown command. Try /help.")
	}
}

func (h *Handler) handleGenerate(ctx context.Context, chatID int64, userID int64, text string) error {
	h.tg.SendTyping(chatID)

	prefs := h.sessions.Get(userID)
	defs := params.Defaults{
		Style:       prefs.Style,
		AspectRatio: prefs.AspectRatio,
		Resolution:  prefs.Resolution,
	}

	res, err := h.pipe.GenerateWith(ctx, text, defs)
	if err != nil {
		h.logger.Error("generation failed", "err", err)
		return h.tg.SendText(chatID, pipeline.FormatError(err))
	}

	h.rememberFlags(userID, res.Request)

	caption := fmt.Sprintf("%s · %s · %s", res.Request.Style, res.Request.AspectRatio, res.Request.Resolution)
	if err := h.tg.SendPhotoURL(chatID, res.ImageURL, caption); err != nil {
		h.logger.Error("photo send failed", "err", err)
		// Telegram could not fetch the image; at least hand over the link.
		return h.tg.SendText(chatID, pipeline.FormatImage(res.ImageURL))
	}
	return nil
}

// rememberFlags stores the resolved values behind flags the user set
// explicitly. Values that fell back to defaults are not sticky.
func (h *Handler) rememberFlags(userID int64, req params.Request) {
	var upd session.Prefs
	if req.Flags.StyleSet {
		upd.Style = req.Style
	}
	if req.Flags.AspectSet {
		upd.AspectRatio = req.AspectRatio
	}
	if req.Flags.ResSet && req.ExplicitResolution {
		upd.Resolution = req.Resolution.String()
	}
	h.sessions.Update(userID, upd)
}

func optionsText() string {
	var b strings.Builder

	b.WriteString("🎨 Styles:\n  ")
	b.WriteString(strings.Join(params.Styles.Names(), ", "))

	b.WriteString("\n\n📐 Aspect ratios:\n  ")
	b.WriteString(strings.Join(params.AspectRatios.Names(), ", "))

	b.WriteString("\n\n🖼 Resolutions:\n  ")
	resolutions := params.SupportedResolutions()
	strs := make([]string, len(resolutions))
	for i, r := range resolutions {
		strs[i] = r.String()
	}
	b.WriteString(strings.Join(strs, ", "))

	return b.String()
}
