package channels

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mentorhub/dashboard-service/internal/models"
)

// EmailChannel mails each notification to the configured operations inbox
// via SendGrid.
type EmailChannel struct {
	client  *sendgrid.Client
	from    *sgmail.Email
	to      []*sgmail.Email
	subjTag string
}

func NewEmailChannel(apiKey, appName, fromAddr string, recipients []string) *EmailChannel {
	to := make([]*sgmail.Email, 0, len(recipients))
	for _, r := range recipients {
		to = append(to, sgmail.NewEmail("", r))
	}
	return &EmailChannel{
		client:  sendgrid.NewSendClient(apiKey),
		from:    sgmail.NewEmail(appName, fromAddr),
		to:      to,
		subjTag: "[" + appName + "] ",
	}
}

func (c *EmailChannel) Name() string {
	return "email"
}

func (c *EmailChannel) Deliver(ctx context.Context, n models.Notification) error {
	if len(c.to) == 0 {
		return nil
	}

	p := sgmail.NewPersonalization()
	p.Subject = c.subjTag + n.Title
	p.AddTos(c.to...)

	m := sgmail.NewV3Mail()
	m.SetFrom(c.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", n.Message))

	resp, err := c.client.SendWithContext(ctx, m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}

var _ Channel = (*EmailChannel)(nil)
