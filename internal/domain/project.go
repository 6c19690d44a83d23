package domain

import "time"

// Project phases shown to the customer.
const (
	ProjectDraft      = "DRAFT"
	ProjectInProgress = "IN_PROGRESS"
	ProjectCompleted  = "COMPLETED"
)

// Project is a unit of work under an object: a design iteration, a planting
// season, a construction stage. Media files reference it by folder.
type Project struct {
	ProjectID   string    `json:"id" dynamodbav:"project_id"`
	ObjectID    string    `json:"object_id" dynamodbav:"object_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	Status      string    `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=DRAFT IN_PROGRESS COMPLETED"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=DRAFT IN_PROGRESS COMPLETED"`
}
