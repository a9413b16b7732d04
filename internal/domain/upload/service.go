package upload

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path"
	"strconv"
	"strings"

	"shopuploads/internal/domain"
	"shopuploads/internal/repository"
)

// AllowedExtensions is the fixed set of accepted upload extensions.
var AllowedExtensions = map[string]bool{
	"txt":  true,
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

const placeholderReview = "Sample Review"

// Service runs the upload workflow: validate, write the blob, record file
// metadata, record the product row. A failure after the metadata insert leaves
// the file and metadata record behind; nothing compensates.
type Service struct {
	blobs    BlobStore
	metadata MetadataRepository
	products repository.ProductRepository
	logger   *log.Logger
}

func NewService(blobs BlobStore, metadata MetadataRepository, products repository.ProductRepository, logger *log.Logger) *Service {
	return &Service{blobs: blobs, metadata: metadata, products: products, logger: logger}
}

// SubmitInput carries the raw multipart form fields of one upload request.
// StockCount stays a string until the workflow parses it.
type SubmitInput struct {
	File         *multipart.FileHeader
	ProductName  string
	StockCount   string
	ForceFailure bool
}

// Submit executes the upload workflow and returns the stored filename.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (string, error) {
	if in.ForceFailure {
		return "", ErrForcedFailure
	}
	if in.File == nil {
		s.logger.Println("Failed: No file part in the request.")
		return "", ErrNoFilePart
	}
	if in.File.Filename == "" {
		s.logger.Println("Failed: No file selected for upload.")
		return "", ErrNoSelectedFile
	}
	if !allowedFile(in.File.Filename) {
		return "", ErrExtensionNotAllowed
	}

	filename := sanitizeFilename(in.File.Filename)

	src, err := in.File.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := s.blobs.Save(filename, src); err != nil {
		return "", err
	}

	metadataID, err := s.metadata.Create(ctx, &FileMetadata{FilePath: filename})
	if err != nil {
		return "", fmt.Errorf("failed to record file metadata: %w", err)
	}

	// Parsed only after the metadata insert. A malformed count therefore
	// leaves the file and metadata record behind.
	stock, err := strconv.Atoi(in.StockCount)
	if err != nil {
		return "", fmt.Errorf("invalid initial stock count: %w", err)
	}

	product := &domain.Product{
		Name:            in.ProductName,
		ImageMetadataID: metadataID,
		StockCount:      stock,
		Review:          placeholderReview,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return "", fmt.Errorf("failed to record product: %w", err)
	}

	s.logger.Println("Success: File upload completed successfully.")
	return filename, nil
}

// ListImages returns a download URL for every recorded upload.
func (s *Service) ListImages(ctx context.Context) ([]string, error) {
	docs, err := s.metadata.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("Fetched %d images from MongoDB.", len(docs))

	urls := make([]string, 0, len(docs))
	for _, d := range docs {
		urls = append(urls, DownloadURL(d.FilePath))
	}
	return urls, nil
}

// FilePath resolves a stored name to its location in the blob directory.
func (s *Service) FilePath(name string) string {
	return s.blobs.Path(name)
}

// DownloadURL synthesizes the public URL for a stored filename.
func DownloadURL(name string) string {
	return "/uploads/" + name
}

// allowedFile reports whether the client-sent filename carries an accepted
// extension. Checked against the raw name, before sanitizing, so a name like
// "../../etc/passwd" already fails here.
func allowedFile(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return AllowedExtensions[strings.ToLower(filename[i+1:])]
}

// sanitizeFilename strips directory components and maps runes outside
// [A-Za-z0-9._-] to underscores. Leading dots are dropped so the result can
// never be hidden or relative.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "/" || name == "." {
		name = ""
	}
	name = strings.TrimLeft(name, ".")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" {
		return "file"
	}
	return name
}
