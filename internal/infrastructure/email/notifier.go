// Package email provides the SMTP-backed notifier. Notifications are
// strictly fire-and-forget; a failed send is logged and never surfaces to
// the request that triggered it.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/config"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
)

// Notifier sends notification emails over SMTP
type Notifier struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

// NewNotifier creates an SMTP notifier. When email is disabled in config it
// silently drops every notification.
func NewNotifier(cfg config.EmailConfig, logger *zap.Logger) outbound.Notifier {
	return &Notifier{
		cfg:    cfg,
		logger: logger.Named("email-notifier"),
	}
}

// GroceryListReady tells the user their weekly grocery list was generated
func (n *Notifier) GroceryListReady(ctx context.Context, u *user.User, weekStart time.Time) {
	subject := "Your grocery list is ready"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour grocery list for the week of %s has been generated. Open the app to review it before you shop.\r\n",
		displayName(u), weekStart.Format("January 2, 2006"),
	)
	n.send(u.Email(), subject, body)
}

// MealsSuggested tells the user new meal suggestions were saved
func (n *Notifier) MealsSuggested(ctx context.Context, u *user.User, count int) {
	subject := "New meal suggestions for you"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWe just added %d new meal suggestions based on your preferences. Open the app to schedule them.\r\n",
		displayName(u), count,
	)
	n.send(u.Email(), subject, body)
}

// send dispatches delivery off the request goroutine; a slow SMTP server
// must never stall the operation that triggered the notification.
func (n *Notifier) send(to, subject, body string) {
	if !n.cfg.Enable {
		return
	}
	go n.deliver(to, subject, body)
}

func (n *Notifier) deliver(to, subject, body string) {
	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		n.cfg.FromName, n.cfg.FromAddress, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.SMTPUsername, n.cfg.SMTPPassword, n.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, n.cfg.FromAddress, []string{to}, msg); err != nil {
		n.logger.Warn("Notification email failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return
	}

	n.logger.Debug("Notification email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
}

func displayName(u *user.User) string {
	if u.FirstName() != "" {
		return u.FirstName()
	}
	return u.Email()
}
