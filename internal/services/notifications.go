package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/terraincognita07/candela/internal/models"
)

// ErrDispatchDisabled is returned when no bot token is configured or the
// user has no chat to deliver to.
var ErrDispatchDisabled = errors.New("telegram dispatch disabled")

// TelegramNotifier delivers digests as plain-text Telegram messages. Message
// wording lives here, at the transport edge; the engine only hands over the
// selected entries.
type TelegramNotifier struct {
	botToken string
	client   *http.Client
}

func NewTelegramNotifier(botToken string) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (notifier *TelegramNotifier) Enabled() bool {
	return notifier.botToken != ""
}

func (notifier *TelegramNotifier) SendDigest(ctx context.Context, user models.User, digest Digest) error {
	if !notifier.Enabled() || user.TelegramChatID == "" {
		return ErrDispatchDisabled
	}
	return notifier.send(ctx, user.TelegramChatID, FormatDigestMessage(user, digest))
}

// FormatDigestMessage renders one user's digest as the message body.
func FormatDigestMessage(user models.User, digest Digest) string {
	var builder strings.Builder

	name := strings.TrimSpace(user.DisplayName)
	if name == "" {
		name = user.Email
	}
	fmt.Fprintf(&builder, "Candela digest for %s", name)

	if len(digest.DueToday) > 0 {
		builder.WriteString("\n\nToday:")
		for _, entry := range digest.DueToday {
			builder.WriteString("\n- ")
			builder.WriteString(entry.Name)
			if entry.TurningAge != nil {
				fmt.Fprintf(&builder, " (turns %d)", *entry.TurningAge)
			}
		}
	}

	if len(digest.DueThisWeek) > 0 {
		builder.WriteString("\n\nNext 7 days:")
		for _, entry := range digest.DueThisWeek {
			builder.WriteString("\n- ")
			builder.WriteString(entry.Name)
			switch entry.DaysUntil {
			case 0:
				builder.WriteString(" today")
			case 1:
				builder.WriteString(" tomorrow")
			default:
				fmt.Fprintf(&builder, " in %d days (%s)", entry.DaysUntil, entry.NextOccurrence.Format("Jan 2"))
			}
			if entry.TurningAge != nil {
				fmt.Fprintf(&builder, ", turns %d", *entry.TurningAge)
			}
		}
	}

	return builder.String()
}

func (notifier *TelegramNotifier) send(ctx context.Context, chatID string, message string) error {
	values := url.Values{}
	values.Set("chat_id", chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
