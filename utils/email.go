package utils

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/GhOsCoDeR/mosaic-grove-farm/models"
)

// EmailService sends customer notifications through SendGrid
type EmailService struct {
	client *sendgrid.Client
	sender *mail.Email
}

// NewEmailService initializes the SendGrid client from the environment
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		panic("SENDGRID_API_KEY is not set in environment variables")
	}
	sender := mail.NewEmail("Mosaic Grove", os.Getenv("EMAIL_SENDER"))
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(es.sender, subject, to, htmlContent, htmlContent)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderStatusEmail notifies a customer that their order moved to a new
// workflow state.
func (es *EmailService) SendOrderStatusEmail(toEmail, customerName string, order models.Order) error {
	subject := fmt.Sprintf("Order %s Update - Mosaic Grove", order.ID)
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order (ID: %s) has been marked as <strong>%s</strong>.<br><br>Order Total: <strong>$%.2f</strong><br><br>Thank you for shopping with Mosaic Grove!",
		customerName,
		order.ID,
		order.Status,
		order.Total,
	)

	return es.SendEmail(toEmail, subject, htmlContent)
}
