package reports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soundwatch/soundwatch-api/internal/pkg/cloudinary"
	apperrors "github.com/soundwatch/soundwatch-api/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	lastInput *NoiseReportInput
	calls     int
	err       error
}

func (f *fakeStore) Create(ctx context.Context, input *NoiseReportInput) (*NoiseReport, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if err := ValidateInput(input); err != nil {
		return nil, err
	}
	f.lastInput = input
	return &NoiseReport{
		ID:            primitive.NewObjectID(),
		MediaURL:      input.MediaURL,
		MediaPublicID: input.MediaPublicID,
		MediaType:     input.MediaType,
		Reason:        input.Reason,
		Comment:       input.Comment,
		Location:      input.Location,
		GeoLocation:   DeriveGeoPoint(input.Location),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

type fakeUploader struct {
	audioCalls int
	videoCalls int
	err        error
}

func (f *fakeUploader) UploadAudio(ctx context.Context, file multipart.File, filename string) (*cloudinary.UploadResult, error) {
	f.audioCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &cloudinary.UploadResult{
		URL:      "https://res.cloudinary.com/demo/video/upload/audio/" + filename,
		PublicID: "soundwatch/audio/abc123",
	}, nil
}

func (f *fakeUploader) UploadVideo(ctx context.Context, file multipart.File, filename string) (*cloudinary.UploadResult, error) {
	f.videoCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &cloudinary.UploadResult{
		URL:      "https://res.cloudinary.com/demo/video/upload/video/" + filename,
		PublicID: "soundwatch/video/def456",
	}, nil
}

type nopFile struct {
	*bytes.Reader
}

func (nopFile) Close() error { return nil }

func mediaFile(content string) multipart.File {
	return nopFile{bytes.NewReader([]byte(content))}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func submitRequest() *SubmitRequest {
	return &SubmitRequest{
		File:      mediaFile("fake-audio-bytes"),
		Header:    &multipart.FileHeader{Filename: "evidence.m4a", Size: 1024},
		Reason:    "Loud Music",
		MediaType: MediaTypeAudio,
		Location: &Location{
			Latitude:  float64Ptr(14.5995),
			Longitude: float64Ptr(120.9842),
			Address:   &Address{City: "Manila", Country: "PH"},
		},
	}
}

func TestSubmit_AudioRoundTrip(t *testing.T) {
	store := &fakeStore{}
	uploader := &fakeUploader{}
	svc := NewService(store, uploader, testLogger())

	report, err := svc.Submit(context.Background(), submitRequest())
	require.NoError(t, err)
	require.Equal(t, MediaTypeAudio, report.MediaType)
	require.Equal(t, "Loud Music", report.Reason)
	require.NotNil(t, report.GeoLocation)
	require.Equal(t, []float64{120.9842, 14.5995}, report.GeoLocation.Coordinates)
	require.Equal(t, 1, uploader.audioCalls)
	require.Equal(t, 0, uploader.videoCalls)
	require.Equal(t, store.lastInput.MediaURL, report.MediaURL)
}

func TestSubmit_Video(t *testing.T) {
	store := &fakeStore{}
	uploader := &fakeUploader{}
	svc := NewService(store, uploader, testLogger())

	req := submitRequest()
	req.Header = &multipart.FileHeader{Filename: "clip.mp4", Size: 2048}
	req.MediaType = MediaTypeVideo

	report, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, MediaTypeVideo, report.MediaType)
	require.Equal(t, 1, uploader.videoCalls)
}

func TestSubmit_NoContent(t *testing.T) {
	store := &fakeStore{}
	uploader := &fakeUploader{}
	svc := NewService(store, uploader, testLogger())

	req := submitRequest()
	req.File = nil
	req.Header = nil

	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Contains(t, err.Error(), "no content")
	require.Equal(t, 0, uploader.audioCalls)
	require.Equal(t, 0, store.calls)
}

func TestSubmit_MissingReason(t *testing.T) {
	store := &fakeStore{}
	uploader := &fakeUploader{}
	svc := NewService(store, uploader, testLogger())

	req := submitRequest()
	req.Reason = "  "

	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Equal(t, 0, uploader.audioCalls)
}

func TestSubmit_InvalidMediaType(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeUploader{}, testLogger())

	req := submitRequest()
	req.MediaType = "image"

	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSubmit_InvalidExtension(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewService(&fakeStore{}, uploader, testLogger())

	req := submitRequest()
	req.Header = &multipart.FileHeader{Filename: "evidence.exe", Size: 1024}

	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Equal(t, 0, uploader.audioCalls)
}

func TestSubmit_OutOfRangeLatitude(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewService(&fakeStore{}, uploader, testLogger())

	req := submitRequest()
	req.Location.Latitude = float64Ptr(95)

	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	// Rejected before any upload happens
	require.Equal(t, 0, uploader.audioCalls)
}

func TestSubmit_UploadFailure(t *testing.T) {
	store := &fakeStore{}
	uploader := &fakeUploader{err: fmt.Errorf("cloudinary unreachable")}
	svc := NewService(store, uploader, testLogger())

	_, err := svc.Submit(context.Background(), submitRequest())
	require.ErrorIs(t, err, apperrors.ErrStorage)
	// Nothing reaches the store when the upload fails
	require.Equal(t, 0, store.calls)
}

func TestSubmit_StoreFailureAfterUpload(t *testing.T) {
	store := &fakeStore{err: fmt.Errorf("%w: connection reset", apperrors.ErrStorage)}
	uploader := &fakeUploader{}
	svc := NewService(store, uploader, testLogger())

	report, err := svc.Submit(context.Background(), submitRequest())
	require.ErrorIs(t, err, apperrors.ErrStorage)
	// The media was uploaded, but no record is reported as created
	require.Nil(t, report)
	require.Equal(t, 1, uploader.audioCalls)
}
