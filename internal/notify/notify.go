package notify

import "log"

// Kind classifies a user-visible notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier delivers fire-and-forget user-visible notifications. The
// services never consume a return value from it.
type Notifier interface {
	Notify(kind Kind, title, message string)
}

// LogNotifier writes notifications to the process log. It stands in for a
// real delivery channel (the UI's toast layer) during local operation.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(kind Kind, title, message string) {
	log.Printf("[notify] %s: %s - %s", kind, title, message)
}
