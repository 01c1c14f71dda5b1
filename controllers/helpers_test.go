// File: /controllers/helpers_test.go
package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialnet-api/config"
	"socialnet-api/database"
	"socialnet-api/routes"
	"socialnet-api/services"
)

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// One shared-cache in-memory database per test, pinned to a single
	// connection so every query sees the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:            "8080",
		UploadDir:       t.TempDir(),
		MaxUploadSize:   8 << 20,
		SessionLifetime: time.Hour,
		CORSOrigin:      "*",
	}

	sessions := services.NewSessionService(db, cfg.SessionLifetime)
	emailService := services.NewEmailService(cfg)

	r := gin.New()
	routes.SetupRoutes(r, db, cfg, sessions, emailService)
	return r, db
}

func doJSON(r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doMultipart(r *gin.Engine, method, path string, fields map[string]string, fileField, fileName string, fileContent []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if fileField != "" {
		fw, _ := w.CreateFormFile(fileField, fileName)
		_, _ = fw.Write(fileContent)
	}
	_ = w.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func parseBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session_id" && c.Value != "" {
			return c
		}
	}
	return nil
}

// registerUser registers a fresh account and returns its session cookie
// plus the registration response body.
func registerUser(t *testing.T, r *gin.Engine, phone, email, password string) (*http.Cookie, map[string]interface{}) {
	t.Helper()
	rr := doJSON(r, http.MethodPost, "/auth/register", map[string]string{
		"phone":     phone,
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  password,
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	return cookie, parseBody(t, rr)
}

// createPost makes a text-only post and returns its id.
func createPost(t *testing.T, r *gin.Engine, cookie *http.Cookie, text string) string {
	t.Helper()
	rr := doMultipart(r, http.MethodPost, "/posts/create", map[string]string{"text": text}, "", "", nil, cookie)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	body := parseBody(t, rr)
	post := body["post"].(map[string]interface{})
	return post["id"].(string)
}
