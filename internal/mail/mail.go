package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
)

// Sender delivers transactional email over SMTP. When Host is empty the mail
// is logged instead of sent, so development works without a mail server.
type Sender struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSender(host, port, username, password, from string) *Sender {
	return &Sender{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

const otpTemplate = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 10px; overflow: hidden; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #3390ec 0%, #00c6ff 100%); padding: 30px; text-align: center; }
        .header h1 { color: white; margin: 0; font-size: 28px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; font-size: 16px; line-height: 1.6; }
        .otp-box { background-color: #f8f9fa; padding: 20px; text-align: center; border-radius: 8px; margin: 30px 0; border: 2px dashed #3390ec; }
        .otp-code { font-size: 36px; font-weight: bold; letter-spacing: 8px; color: #3390ec; font-family: 'Courier New', monospace; }
        .footer { padding: 20px; text-align: center; background-color: #f8f9fa; color: #666; font-size: 14px; }
        .warning { color: #dc3545; font-size: 14px; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🔐 Fresh Chat</h1>
        </div>
        <div class="content">
            <h2>Hello!</h2>
            <p>You have requested to log in to Fresh Chat. Please use the following One-Time Password (OTP) to complete your authentication:</p>
            <div class="otp-box">
                <div class="otp-code">{{.Code}}</div>
            </div>
            <p><strong>This code will expire in 10 minutes.</strong></p>
            <p class="warning">⚠️ If you didn't request this code, please ignore this email and ensure your account is secure.</p>
        </div>
        <div class="footer">
            <p>© 2024 Fresh Chat. All rights reserved.</p>
            <p>This is an automated message, please do not reply to this email.</p>
        </div>
    </div>
</body>
</html>
`

// SendOtpEmail sends the HTML login-code email. Delivery is in the critical
// path of an OTP request; failures propagate to the caller.
func (s *Sender) SendOtpEmail(to, code string) error {
	body, err := renderOtpTemplate(code)
	if err != nil {
		// Fall back to a plain-text message rather than blocking the login.
		return s.send(to, "Your OTP Code", "Your OTP is: "+code, false)
	}
	return s.send(to, "Your Fresh Chat Login Code", body, true)
}

// SendWelcomeEmail greets a newly registered user. Best-effort; callers log
// failures and move on.
func (s *Sender) SendWelcomeEmail(to, name string) error {
	text := fmt.Sprintf("Welcome %s! Thank you for joining Fresh Chat. Start messaging now!", name)
	return s.send(to, "Welcome to Fresh Chat!", text, false)
}

func renderOtpTemplate(code string) (string, error) {
	t, err := template.New("otp").Parse(otpTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	var body bytes.Buffer
	if err := t.Execute(&body, map[string]string{"Code": code}); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}

func (s *Sender) send(to, subject, body string, html bool) error {
	headers := map[string]string{
		"From":         s.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
	}
	if html {
		headers["Content-Type"] = `text/html; charset="UTF-8"`
	} else {
		headers["Content-Type"] = `text/plain; charset="UTF-8"`
	}

	message := ""
	for _, k := range []string{"From", "To", "Subject", "MIME-Version", "Content-Type"} {
		message += fmt.Sprintf("%s: %s\r\n", k, headers[k])
	}
	message += "\r\n" + body

	if s.Host == "" {
		log.Printf("MOCK EMAIL TO: %s SUBJECT: %q", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)
	return smtp.SendMail(addr, auth, s.From, []string{to}, []byte(message))
}
