// Package mail implements outbound mail delivery over SMTP.
package mail

import (
	"context"
	"io"
	"log/slog"

	"quizdeck/config"
	"quizdeck/internal/domain/service"
	"quizdeck/internal/errors"

	"gopkg.in/gomail.v2"
)

const resetMailSubject = "Reset your password"

// smtpMailer sends mail through a configured SMTP relay using gomail.
// Each reset mail carries the reset link as text plus a QR code of the same
// link as a PNG attachment, so the link can be opened from a phone camera.
type smtpMailer struct {
	cfg    *config.MailConfig
	qr     service.QRCodeService
	logger *slog.Logger
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config, qr service.QRCodeService, logger *slog.Logger) (service.Mailer, error) {
	if cfg.Mail == nil || cfg.Mail.Host == "" {
		return nil, errors.New("mail transport must be configured")
	}

	return &smtpMailer{
		cfg:    cfg.Mail,
		qr:     qr,
		logger: logger,
	}, nil
}

// SendPasswordReset delivers a password-reset mail containing resetURL.
func (m *smtpMailer) SendPasswordReset(ctx context.Context, to string, resetURL string) error {
	// gomail dials synchronously; honor an already-cancelled request before connecting.
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "request cancelled before mail dispatch")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetMailSubject)
	msg.SetBody("text/plain", resetURL)

	if png, err := m.qr.GeneratePNG(resetURL); err != nil {
		// The link in the body is sufficient; a QR failure should not block the reset flow.
		m.logger.Warn("Failed to render reset QR code", slog.Any("error", err))
	} else {
		msg.Attach("reset-link.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, writeErr := w.Write(png)

			return writeErr
		}))
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "failed to send password reset mail")
	}

	return nil
}
