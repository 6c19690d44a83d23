package domain

import "time"

// Object is a landscape site a customer has commissioned work on. Customers
// are granted access by email membership; staff see every object.
type Object struct {
	ObjectID     string    `json:"id" dynamodbav:"object_id"`
	Title        string    `json:"title" dynamodbav:"title"`
	Address      string    `json:"address,omitempty" dynamodbav:"address"`
	Description  string    `json:"description,omitempty" dynamodbav:"description"`
	MemberEmails []string  `json:"member_emails" dynamodbav:"member_emails"`
	CoverFileID  *string   `json:"cover_file_id,omitempty" dynamodbav:"cover_file_id"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// HasMember reports whether email is granted access to the object.
// Comparison is case-sensitive, matching how emails are stored.
func (o *Object) HasMember(email string) bool {
	for _, m := range o.MemberEmails {
		if m == email {
			return true
		}
	}
	return false
}

// AccessibleBy is the single ownership predicate for customer-facing reads:
// staff see everything, customers only objects they are a member of.
func (o *Object) AccessibleBy(who Identity) bool {
	return who.IsStaff() || o.HasMember(who.Email)
}

type CreateObjectRequest struct {
	Title        string   `json:"title" validate:"required"`
	Address      string   `json:"address"`
	Description  string   `json:"description"`
	MemberEmails []string `json:"member_emails" validate:"dive,email"`
}

type UpdateObjectRequest struct {
	Title        *string   `json:"title"`
	Address      *string   `json:"address"`
	Description  *string   `json:"description"`
	MemberEmails *[]string `json:"member_emails" validate:"omitempty,dive,email"`
	CoverFileID  *string   `json:"cover_file_id"`
}
