package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apimiddleware "mediavault/internal/adapter/api/middleware"
	"mediavault/internal/adapter/repository"
	"mediavault/internal/domain/entity"
	"mediavault/internal/infrastructure/auth"
	"mediavault/internal/infrastructure/metrics"
	"mediavault/internal/infrastructure/persistence/memory"
	"mediavault/internal/infrastructure/ratelimit"
	"mediavault/internal/usecase"
	"mediavault/pkg/response"
)

type testServer struct {
	e     *echo.Echo
	store *memory.Store
}

func strPtr(s string) *string { return &s }

func seedDoc() *entity.CatalogDocument {
	return &entity.CatalogDocument{
		Assets: []entity.Asset{
			{ID: "A", Title: "Mountain Landscape", FileName: "image-1.jpg", FileSize: 2000, Tags: []string{"Nature", "Travel"}, CollectionID: strPtr("col-1"), UploadDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "x", Title: "Modern Office Space", FileName: "image-2.jpg", FileSize: 1000, Tags: []string{"Business"}, CollectionID: strPtr("col-1"), UploadDate: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
		},
		Collections: []entity.Collection{{ID: "col-1", Name: "Marketing Assets"}},
		Tags:        []entity.Tag{{ID: "tag-nature", Name: "Nature"}, {ID: "tag-travel", Name: "Travel"}},
	}
}

func newTestServer(t *testing.T, mutate func(*ServerOptions)) *testServer {
	t.Helper()
	store := memory.New()
	repo := repository.NewCatalogRepository(store, seedDoc())
	opts := ServerOptions{
		Assets:        usecase.NewAssetUseCase(repo, nil),
		Collections:   usecase.NewCollectionUseCase(repo, nil),
		Tags:          usecase.NewTagUseCase(repo, nil),
		Stats:         repo,
		StorageDriver: memory.Driver,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return &testServer{e: NewServer(opts), store: store}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/health", "")
	if assert.Equal(t, http.StatusOK, rec.Code) {
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		assert.Contains(t, rec.Body.String(), `"assets":2`)
	}
}

func TestTagFilterThenTagDeleteScenario(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/assets?tags=Travel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assets := decode[[]entity.Asset](t, rec)
	require.Len(t, assets, 1)
	assert.Equal(t, "A", assets[0].ID)

	rec = s.do(t, http.MethodDelete, "/api/tags/tag-travel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tag deleted successfully", decode[response.MessageBody](t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/assets/A", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Nature"}, decode[entity.Asset](t, rec).Tags)
}

func TestBulkUpdateSkipsMissingScenario(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPatch, "/api/assets/bulk", `{"assetIds":["x","y"],"updates":{"copyright":"Free to use"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[[]entity.Asset](t, rec)
	require.Len(t, updated, 1)
	assert.Equal(t, "x", updated[0].ID)
	assert.Equal(t, "Free to use", updated[0].Copyright)
}

func TestBulkRequiresAssetIDs(t *testing.T) {
	s := newTestServer(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPatch, "/api/assets/bulk"},
		{http.MethodPost, "/api/assets/bulk-delete"},
	} {
		rec := s.do(t, tc.method, tc.path, `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, tc.path)
		body := decode[response.ErrorBody](t, rec)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		assert.Equal(t, "assetIds array is required", body.Error)

		rec = s.do(t, tc.method, tc.path, `{"assetIds":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.path)
	}
}

func TestBulkEmptyListsAreNoOps(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPatch, "/api/assets/bulk", `{"assetIds":[],"updates":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/assets/bulk-delete", `{"assetIds":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[response.MessageBody](t, rec)
	require.NotNil(t, body.Deleted)
	assert.Zero(t, *body.Deleted)
	assert.Zero(t, s.store.Saves())
}

func TestBulkDelete(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/assets/bulk-delete", `{"assetIds":["A","x","nope"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[response.MessageBody](t, rec)
	assert.Equal(t, "2 assets deleted successfully", body.Message)
	assert.Equal(t, 2, *body.Deleted)

	rec = s.do(t, http.MethodGet, "/api/assets", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDuplicateTagScenario(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/tags", `{"name":"nature"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[response.ErrorBody](t, rec)
	assert.Equal(t, "Tag already exists", body.Error)

	rec = s.do(t, http.MethodPost, "/api/tags", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/tags", `{"name":"Food"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Food", decode[entity.Tag](t, rec).Name)
}

func TestCreateThenFetchRoundTrip(t *testing.T) {
	s := newTestServer(t, nil)

	draft := entity.AssetDraft{
		Title:        "Urban Architecture",
		Description:  "Modern city building facade",
		Tags:         []string{"Architecture", "Abstract"},
		CollectionID: strPtr("col-1"),
		FileName:     "image-4.jpg",
		FileSize:     1234567,
		Dimensions:   entity.Dimensions{Width: 1920, Height: 1080},
		Format:       "JPEG",
		ImageURL:     "https://picsum.photos/id/1080/1920/1080",
		Copyright:    "Free to use",
		UsageRights:  "Commercial use allowed",
	}
	payload, err := json.Marshal(draft)
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/api/assets", string(payload))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[entity.Asset](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.UploadDate.IsZero())
	assert.Equal(t, created.UploadDate, created.UpdatedAt)

	rec = s.do(t, http.MethodGet, "/api/assets/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[entity.Asset](t, rec)
	assert.True(t, created.UploadDate.Equal(fetched.UploadDate))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, draft.Title, fetched.Title)
	assert.Equal(t, draft.Tags, fetched.Tags)
	assert.Equal(t, *draft.CollectionID, *fetched.CollectionID)
	assert.Equal(t, draft.FileSize, fetched.FileSize)
	assert.Equal(t, draft.Dimensions, fetched.Dimensions)
	assert.Equal(t, draft.UsageRights, fetched.UsageRights)
}

func TestUpdateAssetRejectsProtectedAndUnknownFields(t *testing.T) {
	s := newTestServer(t, nil)

	for _, body := range []string{
		`{"id":"other"}`,
		`{"fileSize":1}`,
		`{"uploadDate":"2020-01-01T00:00:00Z"}`,
		`{"popularity":5}`,
	} {
		rec := s.do(t, http.MethodPut, "/api/assets/A", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "VALIDATION_ERROR", decode[response.ErrorBody](t, rec).Code, body)
	}

	rec := s.do(t, http.MethodPut, "/api/assets/A", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAssetCollectionTriState(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPut, "/api/assets/A", `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	a := decode[entity.Asset](t, rec)
	assert.Equal(t, "Renamed", a.Title)
	require.NotNil(t, a.CollectionID, "absent collectionId keeps membership")

	rec = s.do(t, http.MethodPut, "/api/assets/A", `{"collectionId":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[entity.Asset](t, rec).CollectionID)
	assert.Contains(t, rec.Body.String(), `"collectionId":null`)

	rec = s.do(t, http.MethodPut, "/api/assets/nope", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Asset not found", decode[response.ErrorBody](t, rec).Error)
}

func TestDeleteAssetTwiceIsNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodDelete, "/api/assets/A", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asset deleted successfully", decode[response.MessageBody](t, rec).Message)

	for i := 0; i < 2; i++ {
		rec = s.do(t, http.MethodDelete, "/api/assets/A", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

func TestCollectionLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/collections/col-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[entity.CollectionDetail](t, rec)
	assert.Equal(t, "Marketing Assets", detail.Name)
	assert.Len(t, detail.Assets, 2)

	rec = s.do(t, http.MethodPost, "/api/collections", `{"name":"Brand Guidelines","description":"Brand identity"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[entity.Collection](t, rec)

	rec = s.do(t, http.MethodPut, "/api/collections/"+created.ID, `{"description":"Updated"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[entity.Collection](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Brand Guidelines", updated.Name)
	assert.Equal(t, "Updated", updated.Description)

	rec = s.do(t, http.MethodPut, "/api/collections/"+created.ID, `{"id":"hijack"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/collections/col-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/collections", "")
	collections := decode[[]entity.Collection](t, rec)
	require.Len(t, collections, 1)
	assert.Equal(t, created.ID, collections[0].ID)

	rec = s.do(t, http.MethodGet, "/api/assets?collectionId=col-1", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
	rec = s.do(t, http.MethodGet, "/api/assets/A", "")
	assert.Nil(t, decode[entity.Asset](t, rec).CollectionID)

	rec = s.do(t, http.MethodGet, "/api/collections/col-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAssetsQueryParameters(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/assets?sortBy=size&sortOrder=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assets := decode[[]entity.Asset](t, rec)
	require.Len(t, assets, 2)
	assert.Equal(t, "x", assets[0].ID)

	rec = s.do(t, http.MethodGet, "/api/assets?search=OFFICE", "")
	assets = decode[[]entity.Asset](t, rec)
	require.Len(t, assets, 1)
	assert.Equal(t, "x", assets[0].ID)

	rec = s.do(t, http.MethodGet, "/api/assets?tags=Business,%20Travel&collectionId=col-1&sortBy=date&sortOrder=desc", "")
	assets = decode[[]entity.Asset](t, rec)
	require.Len(t, assets, 2)
	assert.Equal(t, "x", assets[0].ID)
}

func TestSaveFailureReturnsInternalError(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.SetFailure(stderrors.New("disk quota exceeded"))

	rec := s.do(t, http.MethodPost, "/api/tags", `{"name":"Food"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[response.ErrorBody](t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Contains(t, body.Error, "disk quota exceeded")
}

func TestUnknownRouteUsesErrorBody(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[response.ErrorBody](t, rec).Code)
}

func TestWritesRequireTokenWhenAuthEnabled(t *testing.T) {
	tokens := auth.NewTokenService("s3cret", time.Hour)
	s := newTestServer(t, func(o *ServerOptions) {
		o.Auth = apimiddleware.NewAuthMiddleware(tokens)
	})

	rec := s.do(t, http.MethodGet, "/api/tags", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/tags", `{"name":"Food"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/tags", `{"name":"Food"}`, "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := tokens.Issue("editor")
	require.NoError(t, err)
	rec = s.do(t, http.MethodPost, "/api/tags", `{"name":"Food"}`, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRateLimitAndMetrics(t *testing.T) {
	m := metrics.New(nil)
	s := newTestServer(t, func(o *ServerOptions) {
		o.RateLimiter = ratelimit.NewRateLimiter(0.001, 2)
		o.Metrics = m
	})

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/tags", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/tags", "").Code)
	rec := s.do(t, http.MethodGet, "/api/tags", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	mrec := httptest.NewRecorder()
	m.Handler().ServeHTTP(mrec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, mrec.Body.String(), `mediavault_http_requests_total{method="GET",route="/api/tags",status="200"} 2`)
	assert.Contains(t, mrec.Body.String(), `status="429"`)
}

func TestEventsRouteOnlyWhenHubConfigured(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/api/events", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
