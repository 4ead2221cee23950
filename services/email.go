package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"

	"notebook_forms_go/config"
	"notebook_forms_go/services/i18n"
)

// Email represents an email message
type Email struct {
	To          []string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []EmailAttachment
}

// EmailAttachment is a file sent with an email.
type EmailAttachment struct {
	FileName string
	Content  []byte
}

var generatedEmailTemplate = template.Must(template.New("generated").Parse(
	`<html><body style="font-family:sans-serif;color:#212121">` +
		`<h2>{{.Title}}</h2><p>{{.Body}}</p>` +
		`<p style="color:#757575;font-size:12px">{{.AppName}}</p>` +
		`</body></html>`))

// BuildGeneratedFileEmail creates the email that delivers a generated file.
func BuildGeneratedFileEmail(to string, file *GeneratedFile, templateName, lang string) (*Email, error) {
	args := map[string]interface{}{"name": templateName, "pages": file.Pages}
	subject := i18n.Translate(lang, "email.subject", args)
	body := i18n.Translate(lang, "email.body", args)

	var html bytes.Buffer
	err := generatedEmailTemplate.Execute(&html, struct {
		Title, Body, AppName string
	}{subject, body, i18n.Translate(lang, "app.name")})
	if err != nil {
		return nil, fmt.Errorf("failed to render email: %w", err)
	}

	return &Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: html.String(),
		TextBody: body,
		Attachments: []EmailAttachment{{
			FileName: file.FileName,
			Content:  file.Data,
		}},
	}, nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("[INFO] Email logged (test mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}
	for _, a := range email.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.FileName,
			Content:  a.Content,
		})
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("[INFO] Email sent via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	for _, a := range email.Attachments {
		log.Printf("Attachment: %s (%d bytes)", a.FileName, len(a.Content))
	}
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email in a goroutine so handlers never wait on
// delivery. Errors are logged.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := *email
	emailCopy.To = append([]string{}, email.To...)
	emailCopy.Attachments = append([]EmailAttachment{}, email.Attachments...)

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("[WARNING] Error sending async email: %v", err)
		}
	}(cfg, &emailCopy)
}
