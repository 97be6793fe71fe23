package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Service handles image storage for report evidence, marketplace photos,
// news covers and banners. Every asset on this platform is an image.
type Service struct {
	cld          *cloudinary.Cloudinary
	uploadFolder string
}

// UploadResult contains the stored asset's location and metadata.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize int64  `json:"fileSize"`
	Format   string `json:"format"`
}

var (
	AllowedImageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	MaxImageSize = int64(5 * 1024 * 1024) // 5MB, matches the upload form limit
)

// NewService creates a Cloudinary-backed image store.
func NewService(cloudName, apiKey, apiSecret, uploadFolder string) (*Service, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	if uploadFolder == "" {
		uploadFolder = "scamwatch"
	}

	return &Service{
		cld:          cld,
		uploadFolder: uploadFolder,
	}, nil
}

// ValidateImageFile checks extension and size before upload.
func ValidateImageFile(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, t := range AllowedImageTypes {
		if ext == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("unsupported image type %q (allowed: %s)", ext, strings.Join(AllowedImageTypes, ", "))
	}
	if header.Size > MaxImageSize {
		return fmt.Errorf("image exceeds the %dMB limit", MaxImageSize/(1024*1024))
	}
	return nil
}

// UploadImage stores an image under <uploadFolder>/<folder>, e.g.
// "scamwatch/reports" for evidence or "scamwatch/marketplace" for
// listing photos.
func (s *Service) UploadImage(ctx context.Context, file multipart.File, folder string) (*UploadResult, error) {
	uploadParams := uploader.UploadParams{
		Folder:       s.uploadFolder + "/" + folder,
		ResourceType: "image",
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Width:    result.Width,
		Height:   result.Height,
		FileSize: int64(result.Bytes),
		Format:   result.Format,
	}, nil
}

// Delete removes an asset by public ID. Callers deleting evidence treat
// failures as best-effort and discard the returned error.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	return err
}

// PublicIDFromURL extracts the cloudinary public ID from a delivery URL
// so evidence stored as bare URLs can still be deleted. Returns "" when
// the URL does not look like a cloudinary asset.
func PublicIDFromURL(rawURL string) string {
	idx := strings.Index(rawURL, "/upload/")
	if idx < 0 {
		return ""
	}
	rest := rawURL[idx+len("/upload/"):]

	// Skip the version segment (v1234567890/) when present.
	if strings.HasPrefix(rest, "v") {
		if slash := strings.Index(rest, "/"); slash > 0 {
			if _, hasDigits := trimDigits(rest[1:slash]); hasDigits {
				rest = rest[slash+1:]
			}
		}
	}

	ext := filepath.Ext(rest)
	return strings.TrimSuffix(rest, ext)
}

func trimDigits(s string) (string, bool) {
	if s == "" {
		return s, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s, false
		}
	}
	return "", true
}
