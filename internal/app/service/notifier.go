package service

// Notifier delivers out-of-band messages to staff and marketing channels.
// Implementations must be safe for concurrent use; callers treat delivery
// as best-effort and never fail an operation on a notification error.
type Notifier interface {
	NotifyStaff(message string) error
	BroadcastPromo(message, photoURL string) error
}
