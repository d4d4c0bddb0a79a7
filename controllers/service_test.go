package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"salonbase-backend/controllers"
	"salonbase-backend/models"
	"salonbase-backend/routes"
	"salonbase-backend/services"
)

type stubImageStore struct {
	outcome services.DeletionOutcome
}

func (s stubImageStore) Upload(ctx context.Context, payload, folder string) (*services.UploadResult, error) {
	return &services.UploadResult{
		PublicID: "services/images/test",
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/services/images/test.png",
		Format:   "png",
	}, nil
}

func (s stubImageStore) Destroy(ctx context.Context, publicID string) services.DeletionOutcome {
	return s.outcome
}

func (s stubImageStore) PublicIDFromReference(ref string) (string, bool) {
	return services.NewCloudinaryStore().PublicIDFromReference(ref)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Service{}))

	manager := services.NewServiceManager(
		services.NewServiceStore(db),
		stubImageStore{outcome: services.Deleted},
		services.NoopListCache{},
	)
	return routes.SetupRouter(controllers.NewServiceController(manager))
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createService(t *testing.T, r *gin.Engine, name string) map[string]any {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/services", gin.H{
		"name":     name,
		"price":    25.0,
		"duration": 30,
		"salon_id": uuid.NewString(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestCreateServiceEndpoint(t *testing.T) {
	r := newTestRouter(t)

	created := createService(t, r, "Haircut")
	assert.Equal(t, float64(1), created["service_id"])
	assert.Equal(t, "Haircut", created["name"])
	assert.Nil(t, created["image_url"])
}

func TestCreateServiceWithImage(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/services", gin.H{
		"name":         "Haircut",
		"price":        25.0,
		"salon_id":     uuid.NewString(),
		"image_base64": "aGVsbG8=",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/services/images/test.png", created["image_url"])
}

func TestCreateServiceRejectsMissingName(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/services", gin.H{
		"price":    25.0,
		"salon_id": uuid.NewString(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListServicesEmptyReturnsNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/services", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No services found")
}

func TestListServicesPagination(t *testing.T) {
	r := newTestRouter(t)
	for i := 0; i < 3; i++ {
		createService(t, r, fmt.Sprintf("Service %d", i+1))
	}

	w := doJSON(r, http.MethodGet, "/api/services?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page, 1)
	assert.Equal(t, "Service 2", page[0]["name"])
}

func TestGetServiceNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/services/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/services/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateServicePartial(t *testing.T) {
	r := newTestRouter(t)
	createService(t, r, "Haircut")

	w := doJSON(r, http.MethodPut, "/api/services/1", gin.H{"name": "Beard trim"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Beard trim", updated["name"])
	assert.Equal(t, 25.0, updated["price"])
}

func TestDeleteServiceEndpoint(t *testing.T) {
	r := newTestRouter(t)
	createService(t, r, "Haircut")

	w := doJSON(r, http.MethodDelete, "/api/services/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, true, result["success"])

	w = doJSON(r, http.MethodGet, "/api/services/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadImageEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/services/upload-image", gin.H{"image_base64": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image_base64 is required")

	w = doJSON(r, http.MethodPost, "/api/services/upload-image", gin.H{"image_base64": "!!not-base64!!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/services/upload-image", gin.H{"image_base64": "aGVsbG8="})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "services/images/test", result["public_id"])
}

func TestDeleteImageEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodDelete, "/api/services/images/services/images/abc.png", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "services/images/abc", result["public_id"])
}

func TestDeleteImageRejectsFullURL(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodDelete, "/api/services/images/httpfoo.com/x.png", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
