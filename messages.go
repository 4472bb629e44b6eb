package medclient

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Conversation is a message thread between two users, typically a patient
// and their doctor.
type Conversation struct {
	ID            string     `json:"id"`
	ParticipantID string     `json:"participantId"`
	Participant   string     `json:"participant"`
	LastMessage   string     `json:"lastMessage"`
	UnreadCount   int        `json:"unreadCount"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Message is one entry in a conversation.
type Message struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	SenderID       string     `json:"senderId"`
	Body           string     `json:"body"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ConversationList is the paginated listing payload.
type ConversationList struct {
	Conversations []Conversation `json:"conversations"`
	Pagination    Pagination     `json:"pagination"`
}

// MessageList is the paginated payload of one conversation's messages.
type MessageList struct {
	Messages   []Message  `json:"messages"`
	Pagination Pagination `json:"pagination"`
}

// SendMessageRequest posts a message into a conversation.
type SendMessageRequest struct {
	Body string `json:"body"`
}

func (r SendMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Body, validation.Required, validation.Length(1, 2000)),
	)
}

// MessagesService handles the in-app messaging between patients and staff.
type MessagesService struct {
	client *Client
}

func NewMessagesService(client *Client) *MessagesService {
	return &MessagesService{client: client}
}

func (s *MessagesService) Conversations(ctx context.Context, page, limit int) (*ConversationList, error) {
	params := Params{}
	if page > 0 {
		params["page"] = page
	}
	if limit > 0 {
		params["limit"] = limit
	}

	env, err := s.client.Get(ctx, "/conversations", params)
	if err != nil {
		return nil, err
	}

	out := &ConversationList{}
	if err := env.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MessagesService) Messages(ctx context.Context, conversationID string, page, limit int) (*MessageList, error) {
	params := Params{}
	if page > 0 {
		params["page"] = page
	}
	if limit > 0 {
		params["limit"] = limit
	}

	env, err := s.client.Get(ctx, "/conversations/"+conversationID+"/messages", params)
	if err != nil {
		return nil, err
	}

	out := &MessageList{}
	if err := env.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MessagesService) Send(ctx context.Context, conversationID, body string) (*Message, error) {
	req := SendMessageRequest{Body: body}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	env, err := s.client.Post(ctx, "/conversations/"+conversationID+"/messages", req)
	if err != nil {
		return nil, err
	}

	out := struct {
		Message Message `json:"message"`
	}{}
	if err := env.Decode(&out); err != nil {
		return nil, err
	}
	return &out.Message, nil
}

func (s *MessagesService) MarkRead(ctx context.Context, conversationID string) error {
	_, err := s.client.Put(ctx, "/conversations/"+conversationID+"/read", nil)
	return err
}
