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

// Service handles Cloudinary upload operations for report evidence
type Service struct {
	cld          *cloudinary.Cloudinary
	uploadFolder string
}

// UploadResult contains the result of a successful upload
type UploadResult struct {
	URL      string
	PublicID string
	Duration float64 // for audio/video, in seconds
	FileSize int64
	Format   string
}

// File validation constants
var (
	AllowedAudioTypes = []string{".mp3", ".wav", ".aac", ".m4a", ".ogg"}
	AllowedVideoTypes = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".3gp"}

	MaxAudioSize = int64(25 * 1024 * 1024)  // 25MB
	MaxVideoSize = int64(100 * 1024 * 1024) // 100MB
)

// NewService creates a new Cloudinary service instance
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
		uploadFolder = "soundwatch"
	}

	return &Service{
		cld:          cld,
		uploadFolder: uploadFolder,
	}, nil
}

// UploadAudio uploads an audio file to Cloudinary
func (s *Service) UploadAudio(ctx context.Context, file multipart.File, filename string) (*UploadResult, error) {
	if s == nil {
		return nil, errors.New("cloudinary is not configured")
	}

	folder := s.uploadFolder + "/audio"

	uploadParams := uploader.UploadParams{
		Folder:       folder,
		ResourceType: "video", // Cloudinary uses "video" resource type for audio
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio: %w", err)
	}

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		FileSize: int64(result.Bytes),
		Format:   result.Format,
	}, nil
}

// UploadVideo uploads a video file to Cloudinary
func (s *Service) UploadVideo(ctx context.Context, file multipart.File, filename string) (*UploadResult, error) {
	if s == nil {
		return nil, errors.New("cloudinary is not configured")
	}

	folder := s.uploadFolder + "/video"

	uploadParams := uploader.UploadParams{
		Folder:       folder,
		ResourceType: "video",
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		FileSize: int64(result.Bytes),
		Format:   result.Format,
	}, nil
}

// Delete removes an asset from Cloudinary. Audio and video assets both live
// under the "video" resource type.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if s == nil {
		return errors.New("cloudinary is not configured")
	}
	if publicID == "" {
		return errors.New("publicID is required")
	}

	destroyParams := uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "video",
	}

	_, err := s.cld.Upload.Destroy(ctx, destroyParams)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	return nil
}

// ValidateAudioFile validates an audio file upload
func ValidateAudioFile(header *multipart.FileHeader) error {
	if header.Size > MaxAudioSize {
		return fmt.Errorf("audio file size exceeds maximum allowed size of %d MB", MaxAudioSize/(1024*1024))
	}

	ext := getFileExtension(header.Filename)
	if !isAllowedExtension(ext, AllowedAudioTypes) {
		return fmt.Errorf("invalid audio file type: %s. Allowed types: %s", ext, strings.Join(AllowedAudioTypes, ", "))
	}

	return nil
}

// ValidateVideoFile validates a video file upload
func ValidateVideoFile(header *multipart.FileHeader) error {
	if header.Size > MaxVideoSize {
		return fmt.Errorf("video file size exceeds maximum allowed size of %d MB", MaxVideoSize/(1024*1024))
	}

	ext := getFileExtension(header.Filename)
	if !isAllowedExtension(ext, AllowedVideoTypes) {
		return fmt.Errorf("invalid video file type: %s. Allowed types: %s", ext, strings.Join(AllowedVideoTypes, ", "))
	}

	return nil
}

// getFileExtension returns the lowercase file extension including the dot
func getFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	return strings.ToLower(ext)
}

// isAllowedExtension checks if the extension is in the allowed list
func isAllowedExtension(ext string, allowedTypes []string) bool {
	for _, allowed := range allowedTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}
