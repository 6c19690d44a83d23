package domain

// VerificationCode stores one-time login codes.
// PK: email, SK: purpose ("login").
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type VerificationCode struct {
	Email     string `json:"email" dynamodbav:"email"`
	Purpose   string `json:"purpose" dynamodbav:"purpose"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// PurposeLogin is the only verification purpose the portal currently issues.
const PurposeLogin = "login"
