package telegram

import (
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/config"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/mercadopago"
)

// Bot sends payment event messages to the operator chat. It is a pure
// notifier: no commands, no polling.
type Bot struct {
	bot         *tele.Bot
	adminChatID int64
}

func NewBot(cfg *config.Config) (*Bot, error) {
	pref := tele.Settings{
		Token: cfg.Telegram.BotToken,
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		bot:         bot,
		adminChatID: cfg.Telegram.AdminChatID,
	}, nil
}

func (b *Bot) GetBotUsername() string {
	return b.bot.Me.Username
}

func (b *Bot) SendPaymentApproved(payment *mercadopago.Payment) error {
	text := fmt.Sprintf(`✅ <b>Pago aprobado</b>

💳 ID: %d
💰 Monto: $%.0f %s
📦 %s
📧 %s`,
		payment.ID,
		payment.TransactionAmount,
		payment.CurrencyID,
		payment.Description,
		payment.Payer.Email,
	)
	return b.send(text)
}

func (b *Bot) SendPaymentRejected(payment *mercadopago.Payment) error {
	text := fmt.Sprintf(`❌ <b>Pago rechazado</b>

💳 ID: %d
💰 Monto: $%.0f %s
📧 %s
ℹ️ %s`,
		payment.ID,
		payment.TransactionAmount,
		payment.CurrencyID,
		payment.Payer.Email,
		payment.StatusDetail,
	)
	return b.send(text)
}

func (b *Bot) SendPaymentPending(payment *mercadopago.Payment) error {
	text := fmt.Sprintf(`⏳ <b>Pago pendiente</b>

💳 ID: %d
💰 Monto: $%.0f %s
📧 %s`,
		payment.ID,
		payment.TransactionAmount,
		payment.CurrencyID,
		payment.Payer.Email,
	)
	return b.send(text)
}

func (b *Bot) send(text string) error {
	_, err := b.bot.Send(&tele.User{ID: b.adminChatID}, text, tele.ModeHTML)
	return err
}
