package service

import (
	"fmt"

	"budgetbook/config"

	"gopkg.in/gomail.v2"
)

// Mailer 发送 HTML 邮件
type Mailer interface {
	Send(to []string, subject, body string) error
}

// EmailService 基于 SMTP 的邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Send 发送邮件给一个或多个收件人
func (s *EmailService) Send(to []string, subject, body string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 email.enabled=true")
	}
	if len(to) == 0 {
		return fmt.Errorf("收件人不能为空")
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(s.message(to, subject, body)); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

func (s *EmailService) message(to []string, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}
	m.SetHeader("From", m.FormatAddress(from, "Budget Book"))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}
