package reports

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/soundwatch/soundwatch-api/internal/pkg/cloudinary"
	apperrors "github.com/soundwatch/soundwatch-api/pkg/errors"
)

// Store is the persistence surface the submission service needs
type Store interface {
	Create(ctx context.Context, input *NoiseReportInput) (*NoiseReport, error)
}

// MediaUploader is the external object-storage surface for evidence files
type MediaUploader interface {
	UploadAudio(ctx context.Context, file multipart.File, filename string) (*cloudinary.UploadResult, error)
	UploadVideo(ctx context.Context, file multipart.File, filename string) (*cloudinary.UploadResult, error)
}

// SubmitRequest carries one submission: exactly one media attachment plus
// structured metadata.
type SubmitRequest struct {
	File      multipart.File
	Header    *multipart.FileHeader
	Reason    string
	MediaType MediaType
	Comment   string
	Location  *Location
}

// Service orchestrates noise-report submissions: validate the attachment,
// upload it to external storage, then write one record to the store.
type Service struct {
	store Store
	media MediaUploader
	log   *logrus.Logger
}

func NewService(store Store, media MediaUploader, log *logrus.Logger) *Service {
	return &Service{
		store: store,
		media: media,
		log:   log,
	}
}

// Submit performs a single submission attempt. There are no retries and no
// idempotency key: every failure is terminal for this request. When the
// upload succeeds but the store write fails, the uploaded asset is left
// behind; callers see a storage error and no record exists.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*NoiseReport, error) {
	if req == nil || req.File == nil || req.Header == nil {
		return nil, fmt.Errorf("%w: no content", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", apperrors.ErrValidation)
	}
	if !req.MediaType.IsValid() {
		return nil, fmt.Errorf("%w: mediaType must be audio or video", apperrors.ErrValidation)
	}
	if err := validateLocation(req.Location); err != nil {
		return nil, err
	}

	var upload *cloudinary.UploadResult
	var err error

	switch req.MediaType {
	case MediaTypeAudio:
		if err := cloudinary.ValidateAudioFile(req.Header); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		upload, err = s.media.UploadAudio(ctx, req.File, req.Header.Filename)
	case MediaTypeVideo:
		if err := cloudinary.ValidateVideoFile(req.Header); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		upload, err = s.media.UploadVideo(ctx, req.File, req.Header.Filename)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: media upload: %v", apperrors.ErrStorage, err)
	}

	report, err := s.store.Create(ctx, &NoiseReportInput{
		MediaURL:      upload.URL,
		MediaPublicID: upload.PublicID,
		MediaType:     req.MediaType,
		Reason:        req.Reason,
		Comment:       req.Comment,
		Location:      req.Location,
	})
	if err != nil {
		// The uploaded asset is now orphaned. No compensating delete here;
		// admins can clean up via the delete endpoint.
		s.log.WithFields(logrus.Fields{
			"publicID": upload.PublicID,
			"url":      upload.URL,
		}).WithError(err).Warn("report write failed after media upload")
		return nil, err
	}

	return report, nil
}
