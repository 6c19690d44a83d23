package domain

import "time"

// Message is a portal conversation entry attached to an object. Customers and
// staff write into the same thread; AuthorRole lets the UI distinguish them.
type Message struct {
	MessageID   string    `json:"id" dynamodbav:"message_id"`
	ObjectID    string    `json:"object_id" dynamodbav:"object_id"`
	AuthorID    string    `json:"author_id" dynamodbav:"author_id"`
	AuthorEmail string    `json:"author_email" dynamodbav:"author_email"`
	AuthorRole  string    `json:"author_role" dynamodbav:"author_role"`
	Body        string    `json:"body" dynamodbav:"body"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}

type PostMessageRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}
