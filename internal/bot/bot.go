// Package bot runs the staff Telegram bot: order lists by status with
// paginated inline keyboards and per-order cards.
package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"beton/internal/models"
	"beton/internal/pagination"
	"beton/internal/services"
)

const ordersPageSize = 5

var statusLabels = map[string]string{
	models.OrderStatusActive:    "Активные",
	models.OrderStatusCompleted: "Завершённые",
	models.OrderStatusRejected:  "Отклонённые",
}

type Bot struct {
	api       *tgbotapi.BotAPI
	client    *Client
	whitelist map[int64]bool
	pager     *pagination.Paginator
}

func New(api *tgbotapi.BotAPI, client *Client, whitelist []int64) (*Bot, error) {
	pager, err := pagination.New(ordersPageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrConfiguration, err)
	}
	allowed := make(map[int64]bool, len(whitelist))
	for _, id := range whitelist {
		allowed[id] = true
	}
	return &Bot{api: api, client: client, whitelist: allowed, pager: pager}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	updates := tgbotapi.NewUpdate(0)
	updates.Timeout = 30
	ch := b.api.GetUpdatesChan(updates)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-ch:
			b.handle(ctx, update)
		}
	}
}

func (b *Bot) handle(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) allowed(chatID int64) bool {
	return b.whitelist[chatID]
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !b.allowed(msg.Chat.ID) {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Доступ запрещён."))
		return
	}
	if msg.Command() != "start" {
		return
	}
	reply := tgbotapi.NewMessage(msg.Chat.ID, "Панель заказов. Что показать?")
	reply.ReplyMarkup = ordersMenuKeyboard()
	b.send(reply)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Inline-mode and expired callbacks arrive without a message.
	if cb.Message == nil {
		return
	}
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			log.Printf("bot: ack callback: %v", err)
		}
	}()

	chatID := cb.Message.Chat.ID
	if !b.allowed(chatID) {
		return
	}

	data := cb.Data
	switch {
	case data == "orders":
		b.edit(cb, "Панель заказов. Что показать?", ordersMenuKeyboard())
	case strings.HasPrefix(data, "order_card-"):
		b.showOrderCard(ctx, cb, strings.TrimPrefix(data, "order_card-"))
	case strings.HasPrefix(data, "orders-"):
		status, page := parseOrdersAction(data)
		b.showOrderList(ctx, cb, status, page)
	}
}

// parseOrdersAction splits "orders-<status>" and "orders-<status>-<page>"
// callbacks. Without a numeric tail the page is 1.
func parseOrdersAction(data string) (string, int) {
	rest := strings.TrimPrefix(data, "orders-")
	if page, err := pagination.ParsePageAction(rest); err == nil {
		status := rest[:strings.LastIndex(rest, "-")]
		return status, page
	}
	return rest, 1
}

func ordersMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(statusLabels[models.OrderStatusActive], "orders-active"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(statusLabels[models.OrderStatusCompleted], "orders-completed"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(statusLabels[models.OrderStatusRejected], "orders-rejected"),
		),
	)
}

func (b *Bot) showOrderList(ctx context.Context, cb *tgbotapi.CallbackQuery, status string, page int) {
	orders, err := b.client.Orders(ctx, status)
	if err != nil {
		log.Printf("bot: list orders: %v", err)
		b.edit(cb, "Не удалось загрузить заказы.", ordersMenuKeyboard())
		return
	}

	window := pagination.Page(orders, ordersPageSize, page)
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, order := range window {
		label := fmt.Sprintf("%s — %s", order.CreatedAt.Format("02.01"), order.Fullname)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "order_card-"+order.ID.String()),
		))
	}

	var controls []tgbotapi.InlineKeyboardButton
	for _, control := range b.pager.Controls(len(orders), page, "orders-"+status, "orders") {
		controls = append(controls, tgbotapi.NewInlineKeyboardButtonData(control.Label, control.Data))
	}
	rows = append(rows, controls)

	text := fmt.Sprintf("%s заказы: %d", statusLabels[status], len(orders))
	b.edit(cb, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showOrderCard(ctx context.Context, cb *tgbotapi.CallbackQuery, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		log.Printf("bot: bad order id %q", rawID)
		return
	}
	order, err := b.client.Order(ctx, id)
	if err != nil {
		log.Printf("bot: load order %s: %v", id, err)
		b.edit(cb, "Не удалось загрузить заказ.", ordersMenuKeyboard())
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Назад", "orders-"+order.Status),
		),
	)
	b.edit(cb, services.FormatOrderSummary(order), keyboard)
}

func (b *Bot) edit(cb *tgbotapi.CallbackQuery, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("bot: edit message: %v", err)
	}
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("bot: send: %v", err)
	}
}
