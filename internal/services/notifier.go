package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"beton/internal/models"
)

// MessageSender is the part of the Telegram bot client the notifier
// uses. *tgbotapi.BotAPI satisfies it.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// OrderNotifier delivers created-order notifications. Delivery is best
// effort: failures are logged, never surfaced to the caller.
type OrderNotifier interface {
	Notify(ctx context.Context, order *models.Order)
}

type telegramNotifier struct {
	sender     MessageSender
	recipients []int64
}

// NewTelegramNotifier fans order notifications out to the given chat
// ids. Per-send timeouts are bounded by the HTTP client the sender was
// built with.
func NewTelegramNotifier(sender MessageSender, recipients []int64) OrderNotifier {
	return &telegramNotifier{sender: sender, recipients: recipients}
}

func (n *telegramNotifier) Notify(ctx context.Context, order *models.Order) {
	text := FormatOrderSummary(order)
	for _, chatID := range n.recipients {
		if ctx.Err() != nil {
			log.Printf("order %s: notification fan-out stopped: %v", order.ID, ctx.Err())
			return
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := n.sender.Send(msg); err != nil {
			log.Printf("order %s: notify chat %d: %v", order.ID, chatID, err)
		}
	}
}

// FormatOrderSummary renders the staff-facing summary of an order:
// numbered item lines with configuration, quantity and prices, then
// the grand total and the customer's contact details.
func FormatOrderSummary(order *models.Order) string {
	var b strings.Builder
	b.WriteString("*Новый заказ!*\n")

	total := decimal.Zero
	for i, item := range order.Items {
		v := item.Product
		if v == nil {
			continue
		}
		line := v.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)

		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, v.Title))
		if conf := v.ConfigurationLine(); conf != "" {
			b.WriteString(" (" + conf + ")")
		}
		b.WriteString(fmt.Sprintf("\n   %d шт. — %s (%s/шт.)\n", item.Quantity, FormatPrice(line), FormatPrice(v.Price)))
	}

	b.WriteString(fmt.Sprintf("\n*Итого: %s*\n", FormatPrice(total)))
	b.WriteString(fmt.Sprintf("\nИмя: %s\nКонтакт: %s\nСпособ связи: %s\n", order.Fullname, order.Contact, order.ContactMethod))
	if order.Deadline != nil {
		b.WriteString(fmt.Sprintf("Срок: %s\n", order.Deadline.Format("02.01.2006")))
	}
	return b.String()
}

// FormatPrice renders a monetary amount with space-separated thousands
// and a ruble suffix. Whole amounts drop the fractional part.
func FormatPrice(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	s = strings.TrimSuffix(s, ".00")

	intPart, frac, hasFrac := strings.Cut(s, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := sign + strings.Join(groups, " ")
	if hasFrac {
		out += "." + frac
	}
	return out + " ₽"
}
