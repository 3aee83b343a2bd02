package copro

import "slices"

// MessageType distingue difusão, alvo por bloco e privado.
type MessageType string

const (
	MessageAnnouncement MessageType = "Annonce"
	MessageTargeted     MessageType = "Message Ciblé"
	MessagePrivate      MessageType = "Message Privé"
	MessageSystem       MessageType = "Système"
)

// SystemSender é o remetente das mensagens automáticas.
const SystemSender = "system"

// Message é uma comunicação do condomínio.
type Message struct {
	ID               string      `json:"id" validate:"required"`
	CoproprieteID    string      `json:"copropriete_id" validate:"required"`
	SenderUserID     string      `json:"sender_user_id" validate:"required"`
	ReceiverUserID   string      `json:"receiver_user_id,omitempty"`
	Type             MessageType `json:"type" validate:"required,oneof=Annonce 'Message Ciblé' 'Message Privé' Système"`
	Title            string      `json:"title"`
	Content          string      `json:"content"`
	AttachmentURL    string      `json:"attachment_url,omitempty"`
	DateSent         Timestamp   `json:"date_sent" validate:"required"`
	ReadBy           []string    `json:"read_by"`
	TargetBuildingID string      `json:"target_building_id,omitempty"`
	VisibleToOwners  bool        `json:"is_visible_to_owners"`
}

// IsBroadcast indica anúncio ou mensagem direcionada a bloco.
func (m Message) IsBroadcast() bool {
	return m.Type == MessageAnnouncement || m.Type == MessageTargeted
}

// IsReadBy indica leitura pelo usuário.
func (m Message) IsReadBy(userID string) bool {
	return slices.Contains(m.ReadBy, userID)
}
