// Package telegram связывает машину диалога с Telegram Bot API:
// длинный поллинг обновлений и отправка сообщений.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hotelsLookerBot/internal/dialog"
	"hotelsLookerBot/internal/domain/models"
	"hotelsLookerBot/pkg/logger/sl"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessageHandler обработчик одного входящего сообщения
type MessageHandler interface {
	HandleMessage(ctx context.Context, in dialog.Incoming)
}

type Handler struct {
	log *slog.Logger
	bot *tgbotapi.BotAPI
}

func NewHandler(log *slog.Logger, botToken string) (*Handler, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Handler{
		log: log,
		bot: bot,
	}, nil
}

// Run запускает обработку сообщений от Telegram. Каждое обновление
// обрабатывается в своей горутине, последовательность сообщений одного
// пользователя обеспечивает сама машина диалога.
func (h *Handler) Run(ctx context.Context, engine MessageHandler) error {
	const op = "telegram.Run"

	h.log.Info("бот авторизован",
		slog.String("op", op),
		slog.String("account", h.bot.Self.UserName),
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			switch {
			case update.Message != nil:
				in := incomingFromMessage(update.Message)
				go engine.HandleMessage(ctx, in)
			case update.CallbackQuery != nil:
				h.answerCallback(update.CallbackQuery)
				in := incomingFromCallback(update.CallbackQuery)
				go engine.HandleMessage(ctx, in)
			}
		}
	}
}

// incomingFromMessage конвертирует сообщение Telegram во входящее
// событие диалога
func incomingFromMessage(message *tgbotapi.Message) dialog.Incoming {
	in := dialog.Incoming{
		UserID:      message.From.ID,
		ChatID:      message.Chat.ID,
		MessageID:   message.MessageID,
		DisplayName: displayName(message.From),
		Text:        message.Text,
	}
	if message.IsCommand() {
		in.Command = message.Command()
		in.Args = strings.TrimSpace(message.CommandArguments())
	}
	return in
}

// incomingFromCallback конвертирует нажатие inline-кнопки. Данные кнопки
// либо метод сортировки, либо количество фотографий.
func incomingFromCallback(cb *tgbotapi.CallbackQuery) dialog.Incoming {
	in := dialog.Incoming{
		UserID:      cb.From.ID,
		DisplayName: displayName(cb.From),
		Callback:    true,
	}
	if cb.Message != nil {
		in.ChatID = cb.Message.Chat.ID
		in.MessageID = cb.Message.MessageID
	}

	data := cb.Data
	if count, ok := strings.CutPrefix(data, callbackPhotoPrefix); ok {
		in.Command = "showimage"
		in.Args = count
		return in
	}
	in.Command = data
	return in
}

func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.log.Warn("callback не подтвержден", sl.Err(err))
	}
}

func displayName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	if user.UserName != "" {
		return user.UserName
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}

// SendText отправляет сообщение с HTML-разметкой и клавиатурой меню
func (h *Handler) SendText(_ context.Context, chatID int64, text string, menu *dialog.Menu) (models.MessageRef, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := menuKeyboard(menu); kb != nil {
		msg.ReplyMarkup = *kb
	}

	sent, err := h.bot.Send(msg)
	if err != nil {
		return models.MessageRef{}, fmt.Errorf("failed to send message: %w", err)
	}
	return models.MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// EditText заменяет текст и клавиатуру уже отправленного сообщения
func (h *Handler) EditText(_ context.Context, ref models.MessageRef, text string, menu *dialog.Menu) error {
	var msg tgbotapi.EditMessageTextConfig
	if kb := menuKeyboard(menu); kb != nil {
		msg = tgbotapi.NewEditMessageTextAndMarkup(ref.ChatID, ref.MessageID, text, *kb)
	} else {
		msg = tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, text)
	}
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := h.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (h *Handler) DeleteMessage(_ context.Context, ref models.MessageRef) error {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(ref.ChatID, ref.MessageID)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// SendPhoto отправляет одну фотографию по URL
func (h *Handler) SendPhoto(_ context.Context, chatID int64, url string, caption string) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
	msg.Caption = caption

	if _, err := h.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send photo: %w", err)
	}
	return nil
}

// SendMediaGroup отправляет фотографии отеля одним альбомом
func (h *Handler) SendMediaGroup(_ context.Context, chatID int64, media []dialog.Media) error {
	files := make([]interface{}, 0, len(media))
	for _, m := range media {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(m.URL))
		photo.Caption = m.Caption
		files = append(files, photo)
	}

	group := tgbotapi.NewMediaGroup(chatID, files)
	if _, err := h.bot.SendMediaGroup(group); err != nil {
		return fmt.Errorf("failed to send media group: %w", err)
	}
	return nil
}
