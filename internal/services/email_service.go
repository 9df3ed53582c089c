package services

import (
	"log"
	"strconv"

	"agrisoil-backend/internal/config"
	"agrisoil-backend/internal/template"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendPasswordResetOTP(to, username, otp string) error
	SendOrderConfirmation(to, username, orderID string, total float64) error
}

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(cfg config.SMTPConfig) IEmailService {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		port = 587
	}
	d := gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password)

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &EmailService{dialer: d, from: from}
}

func (e *EmailService) SendPasswordResetOTP(to, username, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "AgriSoil password reset code")
	m.SetBody("text/html", template.OTPTemplate(username, otp))

	if err := e.dialer.DialAndSend(m); err != nil {
		log.Printf("failed to send OTP email to %s: %v", to, err)
		return err
	}
	return nil
}

func (e *EmailService) SendOrderConfirmation(to, username, orderID string, total float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your AgriSoil order is confirmed")
	m.SetBody("text/html", template.OrderConfirmationTemplate(username, orderID, total))

	if err := e.dialer.DialAndSend(m); err != nil {
		log.Printf("failed to send order confirmation to %s: %v", to, err)
		return err
	}
	return nil
}
