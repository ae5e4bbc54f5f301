package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
)

// sendgridSender sends transactional mail through SendGrid. When no API key
// is configured the sender degrades to logging, which keeps dev environments
// working without a provider account.
type sendgridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailSender(apiKey, fromEmail, fromName string) EmailSender {
	s := &sendgridSender{fromEmail: fromEmail, fromName: fromName}
	if apiKey != "" {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

func (s *sendgridSender) send(ctx context.Context, toName, toEmail, subject, plain, html string) error {
	if s.client == nil {
		logger.Info("email suppressed (no api key)", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}

func (s *sendgridSender) SendWelcome(ctx context.Context, user *domain.User) error {
	subject := "Welcome to GoldLink"
	plain := fmt.Sprintf("Hi %s,\n\nYour GoldLink account is ready. Browse listings, request estimations and book rentals right away.\n", user.FirstName)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your GoldLink account is ready. Browse listings, request estimations and book rentals right away.</p>", user.FirstName)
	return s.send(ctx, user.FirstName, user.Email, subject, plain, html)
}

func (s *sendgridSender) SendBookingCreated(ctx context.Context, owner *domain.User, booking *domain.Booking, jewelryTitle string) error {
	subject := fmt.Sprintf("New booking request for %s", jewelryTitle)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYou have a new booking request for %q from %s to %s.\nTotal: %.2f MAD, deposit: %.2f MAD.\n\nConfirm or decline it from your dashboard.\n",
		owner.FirstName, jewelryTitle,
		booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"),
		booking.TotalPrice, booking.Deposit,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>You have a new booking request for <b>%s</b> from %s to %s.</p><p>Total: %.2f MAD, deposit: %.2f MAD.</p><p>Confirm or decline it from your dashboard.</p>",
		owner.FirstName, jewelryTitle,
		booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"),
		booking.TotalPrice, booking.Deposit,
	)
	return s.send(ctx, owner.FirstName, owner.Email, subject, plain, html)
}

func (s *sendgridSender) SendBookingStatusChanged(ctx context.Context, renter *domain.User, booking *domain.Booking, jewelryTitle string) error {
	subject := fmt.Sprintf("Your booking is now %s", booking.Status)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %q changed status to %s.\n",
		renter.FirstName, jewelryTitle, booking.Status,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking for <b>%s</b> changed status to <b>%s</b>.</p>",
		renter.FirstName, jewelryTitle, booking.Status,
	)
	return s.send(ctx, renter.FirstName, renter.Email, subject, plain, html)
}
