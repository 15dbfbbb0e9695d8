package reports

import (
	"strings"
	"testing"

	apperrors "github.com/soundwatch/soundwatch-api/pkg/errors"
	"github.com/stretchr/testify/require"
)

func validInput() *NoiseReportInput {
	return &NoiseReportInput{
		MediaURL:  "https://res.cloudinary.com/demo/video/upload/evidence.m4a",
		MediaType: MediaTypeAudio,
		Reason:    "Loud Music",
		Comment:   "Party next door",
		Location: &Location{
			Latitude:  float64Ptr(14.5995),
			Longitude: float64Ptr(120.9842),
		},
	}
}

func TestValidateInput_Valid(t *testing.T) {
	require.NoError(t, ValidateInput(validInput()))

	// Location is optional
	input := validInput()
	input.Location = nil
	require.NoError(t, ValidateInput(input))
}

func TestValidateInput_RequiredFields(t *testing.T) {
	cases := map[string]func(*NoiseReportInput){
		"empty mediaUrl":  func(in *NoiseReportInput) { in.MediaURL = "" },
		"blank mediaUrl":  func(in *NoiseReportInput) { in.MediaURL = "   " },
		"empty reason":    func(in *NoiseReportInput) { in.Reason = "" },
		"bad mediaType":   func(in *NoiseReportInput) { in.MediaType = "image" },
		"empty mediaType": func(in *NoiseReportInput) { in.MediaType = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validInput()
			mutate(input)
			err := ValidateInput(input)
			require.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestValidateInput_CoordinateRanges(t *testing.T) {
	input := validInput()
	input.Location.Latitude = float64Ptr(95)
	require.ErrorIs(t, ValidateInput(input), apperrors.ErrValidation)

	input = validInput()
	input.Location.Latitude = float64Ptr(-91)
	require.ErrorIs(t, ValidateInput(input), apperrors.ErrValidation)

	input = validInput()
	input.Location.Longitude = float64Ptr(180.5)
	require.ErrorIs(t, ValidateInput(input), apperrors.ErrValidation)

	// Boundary values are allowed
	input = validInput()
	input.Location.Latitude = float64Ptr(90)
	input.Location.Longitude = float64Ptr(-180)
	require.NoError(t, ValidateInput(input))
}

func TestValidateInput_CommentLength(t *testing.T) {
	input := validInput()
	input.Comment = strings.Repeat("a", maxCommentLength)
	require.NoError(t, ValidateInput(input))

	input.Comment = strings.Repeat("a", maxCommentLength+1)
	require.ErrorIs(t, ValidateInput(input), apperrors.ErrValidation)
}

func TestValidateInput_Nil(t *testing.T) {
	require.ErrorIs(t, ValidateInput(nil), apperrors.ErrValidation)
}
