package service

import (
	"strings"
	"testing"

	"budgetbook/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailService_Disabled(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{})
	err := s.Send([]string{"me@example.com"}, "subject", "<p>body</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "未启用")
}

func TestEmailService_NoRecipients(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{Enabled: true, Host: "localhost", Port: 25})
	assert.Error(t, s.Send(nil, "subject", "body"))
}

func TestEmailService_Message(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{Enabled: true, Username: "bot@example.com"})
	m := s.message([]string{"a@example.com", "b@example.com"}, "Budget report", "<p>hi</p>")

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Budget report"}, m.GetHeader("Subject"))
	require.Len(t, m.GetHeader("From"), 1)
	assert.True(t, strings.Contains(m.GetHeader("From")[0], "bot@example.com"))
}
