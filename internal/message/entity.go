// AngelaMos | 2026
// entity.go

package message

import (
	"time"
)

const (
	TypePersonal     = "personal"
	TypeAnnouncement = "announcement"
)

type Message struct {
	ID                string    `db:"id"                  json:"id"`
	SenderID          string    `db:"sender_id"           json:"sender_id"`
	ReceiverID        string    `db:"receiver_id"         json:"receiver_id"`
	Content           string    `db:"content"             json:"content"`
	MessageType       string    `db:"message_type"        json:"message_type"`
	RelatedEntityID   *string   `db:"related_entity_id"   json:"related_entity_id"`
	RelatedEntityType *string   `db:"related_entity_type" json:"related_entity_type"`
	SentDate          time.Time `db:"sent_date"           json:"sent_date"`
}
