package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appmiddleware "github.com/autopartsfinder/backend/internal/middleware"
	"github.com/autopartsfinder/backend/internal/pkg/logger"
	"github.com/autopartsfinder/backend/internal/storage"
	"github.com/dgrijalva/jwt-go"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*chi.Mux, Service) {
	t.Helper()
	svc := NewService(NewKVRepository(storage.NewMemoryStore()))
	router := chi.NewRouter()
	NewHandler(svc, appmiddleware.NewAuth(testSecret), logger.NewWithOutput(io.Discard)).RegisterRoutes(router)
	return router, svc
}

func token(t *testing.T, subject, role string) string {
	t.Helper()
	claims := &appmiddleware.Claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestUploadMergesRows(t *testing.T) {
	router, svc := newTestRouter(t)

	body, contentType := multipartCSV(t, "inventory.csv",
		"Part Number,Part Name,Make,Model,Year,Price,Stock,Description\n"+
			`BP-100,Brake Pad,Toyota,Corolla,2020,"$1,299.99",4,Front axle`+"\n"+
			"AF-200,Air Filter,,Civic,2018,15.50,3,\n")

	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", "Bearer "+token(t, "admin-id", "admin"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary UploadSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 1, summary.FailedCount)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "Missing required fields.", summary.Errors[0].Message)
	assert.Equal(t, 3, summary.Errors[0].Row)

	part, err := svc.Find(context.Background(), "BP-100")
	require.NoError(t, err)
	assert.Equal(t, 1299.99, part.Price)
	assert.Empty(t, part.OwnerID, "admin uploads do not stamp ownership")
}

func TestUploadStampsStoreOwner(t *testing.T) {
	router, svc := newTestRouter(t)

	body, contentType := multipartCSV(t, "inventory.csv",
		"Part Number,Part Name,Make,Model,Year,Price,Stock\n"+
			"BP-100,Brake Pad,Toyota,Corolla,2020,49.99,4\n")

	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", "Bearer "+token(t, "owner-42", "store_owner"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	part, err := svc.Find(context.Background(), "BP-100")
	require.NoError(t, err)
	assert.Equal(t, "owner-42", part.OwnerID)
}

func TestUploadRejectsCustomers(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartCSV(t, "inventory.csv", "Part Number\n")
	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", "Bearer "+token(t, "u1", "customer"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUploadUnreadableFile(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartCSV(t, "broken.xlsx", "this is not a workbook")
	r := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", "Bearer "+token(t, "admin-id", "admin"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var summary UploadSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 0, summary.SuccessCount)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, 0, summary.Errors[0].Row)
}

func TestListPartsSearchAndOwnerFilter(t *testing.T) {
	router, svc := newTestRouter(t)
	ctx := context.Background()

	require.NoError(t, svc.UpsertAll(ctx, []Part{
		{PartNumber: "BP-100", PartName: "Brake Pad", Make: "Toyota", Model: "Corolla", Year: 2020, OwnerID: "o1"},
		{PartNumber: "AF-200", PartName: "Air Filter", Make: "Honda", Model: "Civic", Year: 2018},
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/parts?q=brake", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var parts []Part
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parts))
	require.Len(t, parts, 1)
	assert.Equal(t, "BP-100", parts[0].PartNumber)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/parts?owner_id=o1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parts))
	require.Len(t, parts, 1)
	assert.Equal(t, "BP-100", parts[0].PartNumber)
}
