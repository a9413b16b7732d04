package upload

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the metadata store collection holding one document per upload.
const Collection = "file-uploads"

// MetadataRepository persists file metadata documents.
type MetadataRepository interface {
	Create(ctx context.Context, m *FileMetadata) (string, error)
	ListAll(ctx context.Context) ([]FileMetadata, error)
}

type metadataRepository struct {
	coll *mongo.Collection
}

func NewMetadataRepository(db *mongo.Database) MetadataRepository {
	return &metadataRepository{coll: db.Collection(Collection)}
}

// Create inserts the document and returns the hex form of the generated id.
func (r *metadataRepository) Create(ctx context.Context, m *FileMetadata) (string, error) {
	res, err := r.coll.InsertOne(ctx, bson.M{"file_path": m.FilePath})
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	m.ID = id
	return id.Hex(), nil
}

func (r *metadataRepository) ListAll(ctx context.Context) ([]FileMetadata, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []FileMetadata
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
