package reports

import (
	"fmt"
	"strings"

	apperrors "github.com/soundwatch/soundwatch-api/pkg/errors"
)

const maxCommentLength = 500

// ValidateInput checks a NoiseReportInput before anything touches the
// database. Every violation wraps ErrValidation so handlers can map it
// to a 4xx without inspecting messages.
func ValidateInput(input *NoiseReportInput) error {
	if input == nil {
		return fmt.Errorf("%w: missing report payload", apperrors.ErrValidation)
	}
	if strings.TrimSpace(input.MediaURL) == "" {
		return fmt.Errorf("%w: mediaUrl is required", apperrors.ErrValidation)
	}
	if !input.MediaType.IsValid() {
		return fmt.Errorf("%w: mediaType must be audio or video", apperrors.ErrValidation)
	}
	if strings.TrimSpace(input.Reason) == "" {
		return fmt.Errorf("%w: reason is required", apperrors.ErrValidation)
	}
	if len(input.Comment) > maxCommentLength {
		return fmt.Errorf("%w: comment cannot exceed %d characters", apperrors.ErrValidation, maxCommentLength)
	}
	return validateLocation(input.Location)
}

func validateLocation(loc *Location) error {
	if loc == nil {
		return nil
	}
	if loc.Latitude != nil {
		if *loc.Latitude < -90 || *loc.Latitude > 90 {
			return fmt.Errorf("%w: latitude must be between -90 and 90", apperrors.ErrValidation)
		}
	}
	if loc.Longitude != nil {
		if *loc.Longitude < -180 || *loc.Longitude > 180 {
			return fmt.Errorf("%w: longitude must be between -180 and 180", apperrors.ErrValidation)
		}
	}
	return nil
}
