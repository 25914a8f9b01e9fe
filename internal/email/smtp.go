package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// Mailer is the outbound-notification surface the handlers depend on.
// Handler tests substitute a fake; production wires the SMTP implementation.
type Mailer interface {
	SendWelcome(to string, name string) error
	SendVerifyOtp(to string, code string) error
	SendResetOtp(to string, code string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SmtpMailer struct {
	cfg Config
}

func NewSmtpMailer(cfg Config) *SmtpMailer {
	return &SmtpMailer{cfg: cfg}
}

func (m *SmtpMailer) SendWelcome(to string, name string) error {
	body := "Welcome, " + name + "!\nYour account has been created with email: " + to
	message := buildMessage(m.cfg.From, to, "Welcome! Your account was created", "text/plain", body)
	return m.send(to, message)
}

func (m *SmtpMailer) SendVerifyOtp(to string, code string) error {
	var body bytes.Buffer
	if err := verifyOtpTemplate.Execute(&body, otpTemplateData{Email: to, Otp: code}); err != nil {
		return err
	}
	message := buildMessage(m.cfg.From, to, "Account Verification OTP", "text/html", body.String())
	return m.send(to, message)
}

func (m *SmtpMailer) SendResetOtp(to string, code string) error {
	var body bytes.Buffer
	if err := resetOtpTemplate.Execute(&body, otpTemplateData{Email: to, Otp: code}); err != nil {
		return err
	}
	message := buildMessage(m.cfg.From, to, "Password Reset OTP", "text/html", body.String())
	return m.send(to, message)
}

func (m *SmtpMailer) send(to string, message string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	fromAddr := parseAddress(m.cfg.From)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	client, err := smtpClient(addr, m.cfg.Host, m.cfg.Port)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(fromAddr); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func smtpClient(addr string, host string, port int) (*smtp.Client, error) {
	// Port 465 is implicit TLS; everything else dials plaintext and upgrades
	// via STARTTLS when the server offers it.
	if port == 465 {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, host)
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func buildMessage(from string, to string, subject string, contentType string, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType + "; charset=utf-8",
		"",
		body,
	}
	return strings.Join(headers, "\r\n")
}

func parseAddress(from string) string {
	start := strings.Index(from, "<")
	end := strings.Index(from, ">")
	if start >= 0 && end > start {
		return strings.TrimSpace(from[start+1 : end])
	}
	return strings.TrimSpace(from)
}
