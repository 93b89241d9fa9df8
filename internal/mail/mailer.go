package mail

import "errors"

// Mailer is the outbound notification channel, used both for booking
// confirmations and reminders.
type Mailer interface {
	Send(to string, subject string, htmlBody string) error
}

// ChannelError wraps a transport failure (provider error, network failure).
// Recoverable: the reminder sweep leaves the notification flag unset and
// retries on the next run while still inside the tolerance band.
type ChannelError struct {
	Err error
}

func (e *ChannelError) Error() string {
	return "mail: channel error: " + e.Err.Error()
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

func IsChannelError(err error) bool {
	var ce *ChannelError
	return errors.As(err, &ce)
}
