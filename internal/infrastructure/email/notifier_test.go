package email

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/config"
)

func trialUser() *user.User {
	return user.NewUser(uuid.New(), "cook@example.com")
}

func TestNotifierDisabledIsSilent(t *testing.T) {
	n := &Notifier{
		cfg:    config.EmailConfig{Enable: false},
		logger: zap.NewNop(),
	}

	n.GroceryListReady(context.Background(), trialUser(), time.Now())
	n.MealsSuggested(context.Background(), trialUser(), 3)
}

func TestNotifierDoesNotBlockTheCaller(t *testing.T) {
	// A listener that accepts and then stays silent stands in for a stalled
	// SMTP server.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	n := &Notifier{
		cfg: config.EmailConfig{
			Enable:      true,
			SMTPHost:    addr.IP.String(),
			SMTPPort:    addr.Port,
			FromAddress: "noreply@example.com",
			FromName:    "Meal Planner",
		},
		logger: zap.NewNop(),
	}

	start := time.Now()
	n.GroceryListReady(context.Background(), trialUser(), time.Now())
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
