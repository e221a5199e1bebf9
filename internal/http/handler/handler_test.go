package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docreview/internal/model"
	svcMocks "docreview/internal/service/mocks"
	"docreview/internal/storage"
	storeMocks "docreview/internal/storage/mocks"
)

func TestHealthCheck(t *testing.T) {
	mStore := new(storeMocks.MockDocumentStore)
	app := fiber.New()
	app.Get("/health", HealthCheck(mStore))

	t.Run("healthy", func(t *testing.T) {
		mStore.On("Ping", mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		mStore.On("Ping", mock.Anything).Return(errors.New("storage down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListCategories(t *testing.T) {
	mockSvc := new(svcMocks.MockReviewService)
	app := fiber.New()
	app.Get("/categories", ListCategories(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Summaries", mock.Anything).Return([]model.CategorySummary{
			{Category: "loan", DocumentNames: []string{"a.pdf"}, UnreviewedCount: 1},
			{Category: "payroll", DocumentNames: []string{}},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var sums []model.CategorySummary
		json.NewDecoder(resp.Body).Decode(&sums)
		require.Len(t, sums, 2)
		assert.Equal(t, "loan", sums[0].Category)
		assert.Equal(t, 1, sums[0].UnreviewedCount)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Summaries", mock.Anything).Return(nil, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetCategoryView(t *testing.T) {
	mockSvc := new(svcMocks.MockReviewService)
	app := fiber.New()
	app.Get("/categories/:category", GetCategoryView(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("CategoryView", mock.Anything, "loan").Return(&model.CategoryView{
			Category:   "loan",
			Unreviewed: []model.ViewItem{{Name: "a.pdf", HasRecord: true, Status: model.StatusUnreviewed}},
			Reviewed:   []model.ViewItem{},
			NoResult:   []model.ViewItem{{Name: "b.pdf", Status: model.StatusNoResult}},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories/loan", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var view model.CategoryView
		json.NewDecoder(resp.Body).Decode(&view)
		assert.Equal(t, "loan", view.Category)
		require.Len(t, view.NoResult, 1)
		assert.Equal(t, "b.pdf", view.NoResult[0].Name)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		mockSvc.On("CategoryView", mock.Anything, "invoice").Return(nil, model.ErrUnknownCategory).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories/invoice", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "UNKNOWN_CATEGORY", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestFetchDocument(t *testing.T) {
	mStore := new(storeMocks.MockDocumentStore)
	app := fiber.New()
	app.Get("/categories/:category/documents/:name", FetchDocument(mStore))

	t.Run("streams pdf", func(t *testing.T) {
		content := "%PDF-1.4 fake"
		mStore.On("Get", mock.Anything, "loan", "a.pdf").Return(
			io.NopCloser(strings.NewReader(content)),
			storage.ObjectInfo{Name: "a.pdf", Size: int64(len(content)), ContentType: "application/pdf"},
			nil,
		).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories/loan/documents/a.pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, content, string(body))
	})

	t.Run("not found", func(t *testing.T) {
		mStore.On("Get", mock.Anything, "loan", "nope.pdf").Return(
			nil, storage.ObjectInfo{}, fmt.Errorf("%w: loan/nope.pdf", model.ErrNotFound),
		).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories/loan/documents/nope.pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	part.Write([]byte(content))
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(svcMocks.MockIngestService)
	app := fiber.New()
	app.Post("/categories/:category/documents", UploadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Ingest", mock.Anything, "loan", "", "contract.pdf", mock.Anything).
			Return("contract.pdf", nil).Once()

		body, ct := multipartBody(t, "contract.pdf", "%PDF-1.4", nil)
		req := httptest.NewRequest(http.MethodPost, "/categories/loan/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var res map[string]any
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, true, res["ok"])
		assert.Equal(t, "contract.pdf", res["name"])
		assert.Equal(t, "loan", res["category"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("explicit name field", func(t *testing.T) {
		mockSvc.On("Ingest", mock.Anything, "loan", "renamed.pdf", "orig.pdf", mock.Anything).
			Return("renamed.pdf", nil).Once()

		body, ct := multipartBody(t, "orig.pdf", "%PDF-1.4", map[string]string{"name": "renamed.pdf"})
		req := httptest.NewRequest(http.MethodPost, "/categories/loan/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/categories/loan/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("name collision", func(t *testing.T) {
		mockSvc.On("Ingest", mock.Anything, "loan", "", "dup.pdf", mock.Anything).
			Return("", fmt.Errorf("%w: loan/dup.pdf", model.ErrAlreadyExists)).Once()

		body, ct := multipartBody(t, "dup.pdf", "%PDF-1.4", nil)
		req := httptest.NewRequest(http.MethodPost, "/categories/loan/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ALREADY_EXISTS", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not a pdf", func(t *testing.T) {
		mockSvc.On("Ingest", mock.Anything, "loan", "", "notes.txt", mock.Anything).
			Return("", fmt.Errorf("%w: missing PDF header", model.ErrInvalidType)).Once()

		body, ct := multipartBody(t, "notes.txt", "hello", nil)
		req := httptest.NewRequest(http.MethodPost, "/categories/loan/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_TYPE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestFetchRecord(t *testing.T) {
	mockSvc := new(svcMocks.MockReviewService)
	app := fiber.New()
	app.Get("/categories/:category/records/:name", FetchRecord(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("GetRecord", mock.Anything, "loan", "a.pdf").
			Return(model.Record{"amount": float64(100)}, model.StatusUnreviewed, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories/loan/records/a.pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var res map[string]any
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "a.pdf", res["name"])
		assert.Equal(t, "unreviewed", res["status"])
		assert.Equal(t, map[string]any{"amount": float64(100)}, res["record"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("no record", func(t *testing.T) {
		mockSvc.On("GetRecord", mock.Anything, "loan", "c.pdf").
			Return(nil, model.ReviewStatus(""), fmt.Errorf("%w: no record", model.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories/loan/records/c.pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSaveRecord(t *testing.T) {
	mockSvc := new(svcMocks.MockReviewService)
	app := fiber.New()
	app.Post("/categories/:category/records", SaveRecord(mockSvc))

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/categories/loan/records", strings.NewReader(body))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("SaveRecord", mock.Anything, "loan", "a.pdf", model.Record{"amount": float64(150)}).
			Return(nil).Once()

		resp := post(`{"name":"a.pdf","record":{"amount":150}}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var res map[string]any
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, true, res["ok"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		resp := post(`{"record":{"amount":1}}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NAME_REQUIRED", res.Error.Code)
	})

	t.Run("missing record", func(t *testing.T) {
		resp := post(`{"name":"a.pdf"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "RECORD_REQUIRED", res.Error.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		resp := post(`{not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("persistence failure", func(t *testing.T) {
		mockSvc.On("SaveRecord", mock.Anything, "loan", "a.pdf", mock.Anything).
			Return(fmt.Errorf("%w: disk full", model.ErrPersistence)).Once()

		resp := post(`{"name":"a.pdf","record":{}}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "PERSISTENCE_ERROR", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestPromoteDemote(t *testing.T) {
	mockSvc := new(svcMocks.MockReviewService)
	app := fiber.New()
	app.Post("/categories/:category/promote", PromoteRecord(mockSvc))
	app.Post("/categories/:category/demote", DemoteRecord(mockSvc))

	post := func(path, body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("promote success", func(t *testing.T) {
		mockSvc.On("Promote", mock.Anything, "loan", "a.pdf").Return(nil).Once()

		resp := post("/categories/loan/promote", `{"name":"a.pdf"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("promote not in unreviewed", func(t *testing.T) {
		mockSvc.On("Promote", mock.Anything, "loan", "done.pdf").
			Return(fmt.Errorf("%w: not unreviewed", model.ErrNotFound)).Once()

		resp := post("/categories/loan/promote", `{"name":"done.pdf"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("demote success", func(t *testing.T) {
		mockSvc.On("Demote", mock.Anything, "loan", "b.pdf").Return(nil).Once()

		resp := post("/categories/loan/demote", `{"name":"b.pdf"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		resp := post("/categories/loan/promote", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NAME_REQUIRED", res.Error.Code)
	})
}

func TestExportCategory(t *testing.T) {
	mockSvc := new(svcMocks.MockReviewService)
	app := fiber.New()
	app.Get("/categories/:category/export", ExportCategory(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, "loan").Return(&model.ExportSnapshot{
			ID:         "snap-1",
			Category:   "loan",
			Unreviewed: map[string]model.Record{"a.pdf": {"amount": float64(100)}},
			Reviewed:   map[string]model.Record{},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories/loan/export", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

		var snap model.ExportSnapshot
		json.NewDecoder(resp.Body).Decode(&snap)
		assert.Equal(t, "loan", snap.Category)
		assert.Len(t, snap.Unreviewed, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("read failure", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, "loan").Return(nil, errors.New("disk gone")).Once()

		req := httptest.NewRequest(http.MethodGet, "/categories/loan/export", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
