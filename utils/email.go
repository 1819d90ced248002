package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/k3a/html2text"
	"gopkg.in/gomail.v2"

	"lapakku/initializers"
)

type EmailData struct {
	Subject string
	Payload interface{}
}

// SendEmail renders an HTML template from templates/ and sends it with a
// plain-text alternative part. Callers treat failures as best-effort.
func SendEmail(config *initializers.Config, to string, data *EmailData, templateFile string) error {
	tmpl, err := template.ParseFiles(filepath.Join("templates", templateFile))
	if err != nil {
		return fmt.Errorf("parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data.Payload); err != nil {
		return fmt.Errorf("render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.EmailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", data.Subject)
	m.SetBody("text/plain", html2text.HTML2Text(body.String()))
	m.AddAlternative("text/html", body.String())

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
