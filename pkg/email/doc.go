// Package email delivers HTML messages, used for critical alerts.
//
// NewSender picks a transport from Config: Postmark when a server token is
// set, an SMTP relay when SMTP_HOST is set, and otherwise FileSender, which
// writes each message to EMAIL_DEV_DIR as an .html file with a .json sidecar.
//
//	sender, err := email.NewSender(cfg)
//	if err != nil {
//		return err
//	}
//	body, err := email.Render(ctx, alert.IncidentEmail(inc))
//	if err != nil {
//		return err
//	}
//	err = sender.Send(ctx, email.Message{
//		To:      "ops@example.com",
//		Subject: "System Error - Critical Issue Detected",
//		HTML:    body,
//		Tag:     "critical-alert",
//	})
//
// Every sender validates the Message first. Failures wrap ErrInvalidParams,
// ErrInvalidConfig or ErrSendFailed.
package email
