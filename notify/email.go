package notify

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"badminton-bot/config"
	"badminton-bot/types"

	"github.com/jordan-wright/email"
	log "github.com/sirupsen/logrus"
)

const subject = "[Auto] New badminton schedule available"

// EmailNotifier sends the digest over SMTP, blind-copying every recipient.
type EmailNotifier struct {
	cfg *config.Config
}

func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) Notify(hits []types.SlotHit) error {
	if len(hits) == 0 {
		log.Println("📭 No schedules to notify.")
		return nil
	}

	mail := email.NewEmail()
	mail.From = n.cfg.EmailFrom
	mail.Bcc = n.cfg.EmailTo
	mail.Subject = subject
	mail.Text = []byte(Digest(hits))

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPass, n.cfg.SMTPHost)

	var err error
	if n.cfg.SMTPPort == 465 {
		err = mail.SendWithTLS(addr, auth, &tls.Config{ServerName: n.cfg.SMTPHost})
	} else {
		err = mail.Send(addr, auth)
	}
	if err != nil {
		return fmt.Errorf("sending notification mail: %w", err)
	}

	log.Printf("📧 Notification sent to %d recipients", len(n.cfg.EmailTo))
	return nil
}
