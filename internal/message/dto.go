// AngelaMos | 2026
// dto.go

package message

type SendMessageRequest struct {
	RecipientID       string  `json:"recipientId"         validate:"required,uuid"`
	Content           string  `json:"content"             validate:"required,notblank,max=5000"`
	MessageType       string  `json:"message_type"        validate:"omitempty,oneof=personal announcement"`
	RelatedEntityID   *string `json:"related_entity_id"   validate:"required_with=RelatedEntityType,omitempty,uuid"`
	RelatedEntityType *string `json:"related_entity_type" validate:"required_with=RelatedEntityID,omitempty,oneof=event donation"`
}

var sendMessages = map[string]string{
	"recipientId":         "Valid recipient ID is required",
	"content.required":    "Message content is required",
	"content.notblank":    "Message content is required",
	"content":             "Message content is too long",
	"message_type":        "Invalid message type",
	"related_entity_id":   "Valid related entity ID is required",
	"related_entity_type": "Invalid related entity type",
}
