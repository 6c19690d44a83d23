package domain

import "time"

// File folders. Each maps to a portal tab; "portfolio" files are public
// marketing media and are served without authentication.
const (
	FolderPhotos    = "photos"
	FolderPanoramas = "panoramas"
	FolderDocuments = "documents"
	FolderModels    = "models"
	FolderPortfolio = "portfolio"
)

// ValidFolder reports whether folder is one of the known folder names.
func ValidFolder(folder string) bool {
	switch folder {
	case FolderPhotos, FolderPanoramas, FolderDocuments, FolderModels, FolderPortfolio:
		return true
	}
	return false
}

// File is the metadata record for an S3 object. Portfolio files carry an
// empty ObjectID and are world-readable.
type File struct {
	FileID           string    `json:"id" dynamodbav:"file_id"`
	ObjectID         string    `json:"object_id,omitempty" dynamodbav:"object_id"`
	ProjectID        string    `json:"project_id,omitempty" dynamodbav:"project_id"`
	Folder           string    `json:"folder" dynamodbav:"folder"`
	Key              string    `json:"-" dynamodbav:"s3_key"`
	Name             string    `json:"name" dynamodbav:"name"`
	Size             int64     `json:"size" dynamodbav:"size"`
	ContentType      string    `json:"content_type" dynamodbav:"content_type"`
	Hash             string    `json:"hash" dynamodbav:"hash"`
	UploadedByUserID string    `json:"uploaded_by" dynamodbav:"uploaded_by_user_id"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
}
