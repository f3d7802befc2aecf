package entities

// ChannelEmail is the only notification channel
const ChannelEmail = "email"

// Notification is a locally stored record simulating an email alert
type Notification struct {
	ID        string   `json:"id"`
	Recipient string   `json:"recipient"`
	Subject   string   `json:"subject"`
	Content   string   `json:"content"`
	Type      string   `json:"type"`
	Priority  Priority `json:"priority"`
	Timestamp string   `json:"timestamp"`
	IsRead    bool     `json:"is_read"`
}

// GetID returns the identifier of the notification
func (n Notification) GetID() string { return n.ID }
