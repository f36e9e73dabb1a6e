package interfaces

// Notifier pushes an unsolicited message to a chat outside the current
// request/response cycle. Implementations must not block the caller's flow
// on delivery problems; failures are logged, never retried.
type Notifier interface {
	Notify(chatID int64, text string) error
}
