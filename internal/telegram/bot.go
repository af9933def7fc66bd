// Package telegram gives the teacher a pocket view of the dashboard:
// today's blocks, the next activity countdown, the week at a glance, and
// the quick note.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"teacherdash/internal/config"
	"teacherdash/internal/lesson"
	"teacherdash/internal/notes"
	"teacherdash/internal/schedule"
	"teacherdash/internal/timeline"
)

// Bot wraps the Telegram API and the dashboard stores.
type Bot struct {
	api      *tgbotapi.BotAPI
	schedule *schedule.Store
	lessons  *lesson.Store
	notes    *notes.Store
	cfg      *config.Config
	now      func() time.Time
}

// NewBot initializes the Telegram bot.
func NewBot(cfg *config.Config, sched *schedule.Store, lessons *lesson.Store, nts *notes.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		schedule: sched,
		lessons:  lessons,
		notes:    nts,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.processMessage(update.Message)
		}
	}
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if b.cfg.TelegramAllowUserID != 0 && msg.From.ID != b.cfg.TelegramAllowUserID {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", msg.From.ID, msg.From.UserName)
		return
	}

	var reply string
	switch {
	case msg.Text == "/start" || msg.Text == "/help":
		reply = "Commands:\n/today - today's schedule\n/next - next activity\n/week - week overview\n/note - show the quick note\n\nAny other text replaces the quick note."
	case msg.Text == "/today":
		day := schedule.Today(b.now())
		reply = formatDayMarkdown(day, b.schedule.Blocks(day), b.lessons.Plans())
	case msg.Text == "/next":
		reply = b.formatNext()
	case msg.Text == "/week":
		reply = formatWeekMarkdown(b.schedule.Week())
	case msg.Text == "/note":
		note := b.notes.Note()
		if note == "" {
			reply = "No quick note yet."
		} else {
			reply = "📝 " + note
		}
	case strings.HasPrefix(msg.Text, "/"):
		reply = "Unknown command. Try /help."
	default:
		b.notes.SetNote(msg.Text)
		if err := b.notes.Persist(); err != nil {
			log.Printf("Warning: failed to persist note: %v", err)
		}
		reply = "Noted."
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ParseMode = "Markdown"
	if _, err := b.api.Send(out); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

func (b *Bot) formatNext() string {
	now := b.now()
	day := schedule.Today(now)
	blocks := b.schedule.Blocks(day)
	next, ok := timeline.NextBlock(blocks, timeline.MinuteOfDay(now))
	if !ok {
		return "Nothing left on today's schedule."
	}
	countdown := timeline.Countdown(next.Start, timeline.MinuteOfDay(now))
	return fmt.Sprintf("⏭ *%s* in %s\n%s | %s",
		next.Block.Title, countdown, next.Block.Time, next.Block.Location)
}

func formatDayMarkdown(day schedule.DayKey, blocks []schedule.Block, plans map[string]lesson.Plan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 *%s*\n\n", schedule.DayLabels[day])
	if len(blocks) == 0 {
		sb.WriteString("No blocks scheduled.")
		return sb.String()
	}
	for _, block := range blocks {
		fmt.Fprintf(&sb, "*%s* — %s\n%s", block.Title, block.Time, block.Location)
		if _, ok := plans[block.ID]; ok {
			sb.WriteString(" ✅ planned")
		}
		if block.Topic != "" {
			fmt.Fprintf(&sb, "\n_%s_", block.Topic)
		}
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatWeekMarkdown(week schedule.Week) string {
	var sb strings.Builder
	sb.WriteString("🗓 *Week overview*\n\n")
	for _, day := range schedule.WeekOrder {
		blocks := week[day]
		fmt.Fprintf(&sb, "*%s*: %d block", schedule.DayLabels[day], len(blocks))
		if len(blocks) != 1 {
			sb.WriteString("s")
		}
		if len(blocks) > 0 {
			fmt.Fprintf(&sb, ", first at %s", blocks[0].Time)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
