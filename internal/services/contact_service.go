package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"portfolio/internal/models"
	"portfolio/internal/repositories"
	"portfolio/pkg/mailer"
)

// EventPublisher publishes a persisted contact message for asynchronous
// notification delivery.
type EventPublisher interface {
	PublishContactReceived(body []byte) error
}

// ContactService handles the contact-form pipeline: persist the message,
// then notify best-effort. A notification failure never rolls back or
// fails a submission that was already saved.
type ContactService struct {
	contactRepo repositories.ContactRepository
	mail        mailer.Sender
	publisher   EventPublisher
	ownerEmail  string
	ownerName   string
}

// NewContactService creates a new ContactService. mail and publisher may
// be nil, in which case the corresponding notification path is skipped.
func NewContactService(contactRepo repositories.ContactRepository, mail mailer.Sender, publisher EventPublisher, ownerEmail, ownerName string) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		mail:        mail,
		publisher:   publisher,
		ownerEmail:  ownerEmail,
		ownerName:   ownerName,
	}
}

// Submit persists a contact message and triggers notifications. The
// persistence failure is fatal; notification failures are only logged.
func (s *ContactService) Submit(contact *models.Contact) (*models.Contact, error) {
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	s.notify(contact)

	return contact, nil
}

// ListAll returns every contact message, newest first.
func (s *ContactService) ListAll() ([]models.Contact, error) {
	return s.contactRepo.GetAll()
}

// notify hands the message to the event queue when one is wired, falling
// back to a direct synchronous send otherwise. Best-effort either way.
func (s *ContactService) notify(contact *models.Contact) {
	if s.publisher != nil {
		body, err := json.Marshal(contact)
		if err != nil {
			log.Printf("Failed to marshal contact message %s: %v", contact.ID, err)
			return
		}
		err = s.publisher.PublishContactReceived(body)
		if err == nil {
			return
		}
		log.Printf("Warning: Failed to publish contact event for message %s, sending directly: %v", contact.ID, err)
	}

	if err := s.SendNotifications(contact); err != nil {
		log.Printf("Warning: Failed to send notification emails for message %s: %v", contact.ID, err)
	}
}

// SendNotifications sends the owner notification and the sender
// acknowledgment. Both are attempted even if the first fails. Also called
// by the queue consumer.
func (s *ContactService) SendNotifications(contact *models.Contact) error {
	if s.mail == nil {
		log.Println("Mailer is not configured. Skipping contact notifications.")
		return nil
	}

	var errs []error
	if err := s.mail.Send(s.ownerEmail, "Portfolio Contact: "+contact.Subject, ownerNotificationBody(contact)); err != nil {
		errs = append(errs, fmt.Errorf("owner notification: %w", err))
	}
	if err := s.mail.Send(contact.Email, "Thank you for contacting me", senderConfirmationBody(contact, s.ownerName)); err != nil {
		errs = append(errs, fmt.Errorf("sender confirmation: %w", err))
	}
	return errors.Join(errs...)
}

// ownerNotificationBody renders the email sent to the portfolio owner.
func ownerNotificationBody(c *models.Contact) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #4a6cf7;">New Contact Form Submission</h2>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Subject:</strong> %s</p>
  <div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #4a6cf7;">
    <p><strong>Message:</strong></p>
    <p>%s</p>
  </div>
  <p style="font-size: 12px; color: #777;">This email was sent from your portfolio contact form.</p>
</div>`, c.Name, c.Email, c.Subject, c.Message)
}

// senderConfirmationBody renders the acknowledgment sent back to the
// person who submitted the form. The message summary is truncated.
func senderConfirmationBody(c *models.Contact, ownerName string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #4a6cf7;">Thank You for Your Message</h2>
  <p>Hello %s,</p>
  <p>Thank you for reaching out to me through my portfolio website. I have received your message and will get back to you as soon as possible.</p>
  <div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #4a6cf7;">
    <p><strong>Subject:</strong> %s</p>
    <p><strong>Message:</strong> %s</p>
  </div>
  <p>Best regards,</p>
  <p><strong>%s</strong></p>
  <p style="font-size: 12px; color: #777;">This is an automated response. Please do not reply to this email.</p>
</div>`, c.Name, c.Subject, truncate(c.Message, 100), ownerName)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
