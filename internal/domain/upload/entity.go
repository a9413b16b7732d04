package upload

import "go.mongodb.org/mongo-driver/bson/primitive"

// FileMetadata is the document stored per uploaded file. FilePath holds the
// sanitized filename relative to the upload directory.
type FileMetadata struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FilePath string             `bson:"file_path" json:"file_path"`
}
