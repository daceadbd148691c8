package workspace

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// SendGmail sends one email through the Gmail API as the authorized user.
// Pass-through utility: the message is raw RFC-822 text, base64url encoded,
// exactly what the messages.send endpoint expects.
func SendGmail(ctx context.Context, creds Credentials, conf *oauth2.Config, recipient, subject, body string) (*gmail.Message, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(creds.TokenSource(ctx, conf)))
	if err != nil {
		return nil, fmt.Errorf("failed to build gmail service: %w", err)
	}

	message := &gmail.Message{
		Raw: BuildRawMessage(recipient, subject, body),
	}

	sent, err := service.Users.Messages.Send("me", message).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return sent, nil
}

// BuildRawMessage renders the RFC-822 payload for one email. Split out so the
// encoding is testable without a Gmail client.
func BuildRawMessage(recipient, subject, body string) string {
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s", recipient, subject, body)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}
