package models

type MessageStatus string

const (
	MessageStatusPending MessageStatus = "pending"
	MessageStatusSent    MessageStatus = "sent"
	MessageStatusFailed  MessageStatus = "failed"
)

func (s MessageStatus) Valid() bool {
	return s == MessageStatusPending || s == MessageStatusSent || s == MessageStatusFailed
}

type Message struct {
	Base
	Content   string        `gorm:"not null" json:"content"`
	ContactID string        `gorm:"type:varchar(36);index;not null" json:"contact_id"`
	UserID    string        `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Status    MessageStatus `gorm:"not null;default:'pending'" json:"status"`
}

func (Message) TableName() string {
	return "messages"
}

// NewMessage builds a pending message owned by userID.
func NewMessage(content, contactID, userID string) *Message {
	return &Message{
		Base:      newBase(),
		Content:   content,
		ContactID: contactID,
		UserID:    userID,
		Status:    MessageStatusPending,
	}
}

// MarkSent and MarkFailed only change the in-memory entity; callers persist
// the new status through the message store.
func (m *Message) MarkSent() {
	m.Status = MessageStatusSent
}

func (m *Message) MarkFailed() {
	m.Status = MessageStatusFailed
}
