package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/soundwatch/soundwatch-api/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeReader struct {
	reports    []NoiseReport
	total      int64
	lastFilter ListFilter
	err        error
}

func (f *fakeReader) List(ctx context.Context, filter ListFilter) ([]NoiseReport, int64, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.reports, f.total, nil
}

func (f *fakeReader) NearLocation(ctx context.Context, longitude, latitude, maxDistanceMeters float64) ([]NoiseReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reports, nil
}

func (f *fakeReader) GetByID(ctx context.Context, id primitive.ObjectID) (*NoiseReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.reports) == 0 {
		return nil, fmt.Errorf("%w: report %s", apperrors.ErrNotFound, id.Hex())
	}
	return &f.reports[0], nil
}

func (f *fakeReader) Delete(ctx context.Context, id primitive.ObjectID) (*NoiseReport, error) {
	return f.GetByID(ctx, id)
}

func testRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reports := r.Group("/reports")
	{
		reports.POST("/new-report", h.NewReport)
		reports.GET("/get-report", h.GetReports)
		reports.GET("/near", h.NearReports)
		reports.GET("/:id", h.GetReport)
	}
	return r
}

func multipartBody(t *testing.T, withFile bool, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if withFile {
		part, err := writer.CreateFormFile("media", "evidence.m4a")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-audio-bytes"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newTestHandler(store *fakeStore, uploader *fakeUploader, reader *fakeReader) *Handler {
	svc := NewService(store, uploader, testLogger())
	return NewHandler(svc, reader, nil, testLogger())
}

func TestNewReport_Success(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeUploader{}, &fakeReader{})
	r := testRouter(h)

	body, contentType := multipartBody(t, true, map[string]string{
		"reason":    "Loud Music",
		"mediaType": "audio",
		"comment":   "Ongoing since midnight",
		"location":  `{"latitude":14.5995,"longitude":120.9842,"address":{"city":"Manila"}}`,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/reports/new-report", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, 201, w.Code)
	var resp struct {
		Status string      `json:"status"`
		Data   NoiseReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	require.Equal(t, MediaTypeAudio, resp.Data.MediaType)
	require.NotNil(t, resp.Data.GeoLocation)
	require.Equal(t, []float64{120.9842, 14.5995}, resp.Data.GeoLocation.Coordinates)
}

func TestNewReport_NoFile(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(store, &fakeUploader{}, &fakeReader{})
	r := testRouter(h)

	body, contentType := multipartBody(t, false, map[string]string{
		"reason":    "Loud Music",
		"mediaType": "audio",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/reports/new-report", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, 400, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "No content", resp["message"])
	require.Equal(t, 0, store.calls)
}

func TestNewReport_InvalidLocationJSON(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeUploader{}, &fakeReader{})
	r := testRouter(h)

	body, contentType := multipartBody(t, true, map[string]string{
		"reason":    "Loud Music",
		"mediaType": "audio",
		"location":  "{not-json",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/reports/new-report", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, 400, w.Code)
}

func TestNewReport_ValidationErrorFromService(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeUploader{}, &fakeReader{})
	r := testRouter(h)

	body, contentType := multipartBody(t, true, map[string]string{
		"mediaType": "audio",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/reports/new-report", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, 400, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp["message"], "reason is required")
}

func TestNewReport_StorageError(t *testing.T) {
	store := &fakeStore{err: fmt.Errorf("%w: connection reset", apperrors.ErrStorage)}
	h := newTestHandler(store, &fakeUploader{}, &fakeReader{})
	r := testRouter(h)

	body, contentType := multipartBody(t, true, map[string]string{
		"reason":    "Loud Music",
		"mediaType": "audio",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/reports/new-report", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, 500, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Failed to store report. Please try again.", resp["message"])
}

func TestGetReports_BareArrayWithTotalHeader(t *testing.T) {
	reader := &fakeReader{
		reports: []NoiseReport{
			{
				ID:        primitive.NewObjectID(),
				MediaURL:  "https://res.cloudinary.com/demo/video/upload/a.m4a",
				MediaType: MediaTypeAudio,
				Reason:    "Construction",
				CreatedAt: time.Now().UTC(),
			},
			{
				ID:        primitive.NewObjectID(),
				MediaURL:  "https://res.cloudinary.com/demo/video/upload/b.mp4",
				MediaType: MediaTypeVideo,
				Reason:    "Construction Noise",
				CreatedAt: time.Now().UTC(),
			},
		},
		total: 2,
	}
	h := newTestHandler(&fakeStore{}, &fakeUploader{}, reader)
	r := testRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/get-report?reason=Construction", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	require.Equal(t, "2", w.Header().Get("X-Total-Count"))
	require.Equal(t, "Construction", reader.lastFilter.Reason)

	var list []NoiseReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
}

func TestNearReports_InvalidParams(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeUploader{}, &fakeReader{})
	r := testRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/near?lat=14.5", nil))
	require.Equal(t, 400, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/near?lng=120.9&lat=abc", nil))
	require.Equal(t, 400, w.Code)
}

func TestGetReport_NotFound(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeUploader{}, &fakeReader{})
	r := testRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/"+primitive.NewObjectID().Hex(), nil))
	require.Equal(t, 404, w.Code)
}

func TestGetReport_InvalidID(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeUploader{}, &fakeReader{})
	r := testRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/reports/not-an-id", nil))
	require.Equal(t, 400, w.Code)
}
