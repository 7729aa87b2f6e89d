package services

import (
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskboard/internal/models"
)

// TelegramService pushes best-effort task notifications to linked
// chats. A nil service or an unlinked chat is always a silent skip.
type TelegramService struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramService(botToken string) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot}, nil
}

func (t *TelegramService) SendMessage(chatID int64, text string) error {
	if t == nil || t.bot == nil || chatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

func (t *TelegramService) NotifyTaskShared(chatID int64, task *models.Task, sharedBy string, permission models.SharePermission) error {
	due := "—"
	if task.DueDate != nil {
		due = task.DueDate.Format("2006-01-02 15:04")
	}
	msg := "📌 Task shared with you\n" +
		"• <b>" + html.EscapeString(task.Title) + "</b>\n" +
		"• From: <code>" + html.EscapeString(sharedBy) + "</code>\n" +
		"• Permission: <code>" + string(permission) + "</code>\n" +
		"• Due: <code>" + due + "</code>"
	return t.SendMessage(chatID, msg)
}

func (t *TelegramService) NotifyStatusChanged(chatID int64, task *models.Task) error {
	msg := "🔁 Status changed\n" +
		"• <b>" + html.EscapeString(task.Title) + "</b>\n" +
		"• Status: <code>" + string(task.Status) + "</code>"
	return t.SendMessage(chatID, msg)
}
