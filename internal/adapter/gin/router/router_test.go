package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-account-service/internal/adapter/db/postgres"
	"user-account-service/internal/adapter/gin/handler"
	"user-account-service/internal/adapter/gin/middleware"
	"user-account-service/internal/adapter/storage"
	"user-account-service/internal/usecase/user"
)

// UserAPISuite exercises the full HTTP stack against an in-memory database
// and a temporary upload directory; only the rate limiter is left disabled.
type UserAPISuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *UserAPISuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(s.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&postgres.UserSchema{}))

	imageStore, err := storage.NewLocalImageStore(s.T().TempDir(), logger)
	s.Require().NoError(err)

	repo := postgres.NewUserRepoPG(db, logger)
	uc := user.New(repo, imageStore, 5*1024*1024, logger)
	h := handler.NewUserHandler(uc, logger)

	s.router = SetupRouter(h, nil, middleware.RateLimiterConfig{}, logger)
}

func (s *UserAPISuite) doJSON(method, path string, body map[string]string) *httptest.ResponseRecorder {
	jsonBody, err := json.Marshal(body)
	s.Require().NoError(err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *UserAPISuite) createUser(fullName, email, password string) *httptest.ResponseRecorder {
	return s.doJSON("POST", "/user/create", map[string]string{
		"fullName": fullName,
		"email":    email,
		"password": password,
	})
}

func (s *UserAPISuite) getAll() []map[string]any {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/user/getAll", nil)
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)

	var items []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &items))
	return items
}

func (s *UserAPISuite) uploadImage(email, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	s.Require().NoError(writer.WriteField("email", email))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write(data)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/user/uploadImage", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	s.router.ServeHTTP(w, req)
	return w
}

func (s *UserAPISuite) TestHealth() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "healthy")
}

func (s *UserAPISuite) TestCreateThenDuplicateConflicts() {
	w := s.createUser("Jane Doe", "jane@example.com", "Sup3rSecret")
	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), "User created successfully")

	w = s.createUser("Jane Doe", "jane@example.com", "Sup3rSecret")
	s.Equal(http.StatusConflict, w.Code)
}

func (s *UserAPISuite) TestCreateValidationErrors() {
	w := s.createUser("Jane3", "not-an-email", "weak")
	s.Equal(http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Contains(resp.Errors, "email")
	s.Contains(resp.Errors, "fullName")
	s.Contains(resp.Errors, "password")

	s.Empty(s.getAll())
}

func (s *UserAPISuite) TestEditKeepsOmittedFields() {
	s.createUser("Jane Doe", "jane@example.com", "Sup3rSecret")

	w := s.doJSON("PUT", "/user/edit", map[string]string{
		"email":    "jane@example.com",
		"password": "N3wSecret",
	})
	s.Equal(http.StatusOK, w.Code)

	items := s.getAll()
	s.Require().Len(items, 1)
	s.Equal("Jane Doe", items[0]["fullName"])
}

func (s *UserAPISuite) TestEditUnknownEmailIs404() {
	w := s.doJSON("PUT", "/user/edit", map[string]string{
		"email":    "nobody@example.com",
		"fullName": "Anyone",
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *UserAPISuite) TestDeleteRemovesFromListing() {
	s.createUser("Jane Doe", "jane@example.com", "Sup3rSecret")
	s.createUser("John Roe", "john@example.com", "An0therSecret")

	w := s.doJSON("DELETE", "/user/delete", map[string]string{"email": "jane@example.com"})
	s.Equal(http.StatusOK, w.Code)

	items := s.getAll()
	s.Require().Len(items, 1)
	s.Equal("john@example.com", items[0]["email"])

	w = s.doJSON("DELETE", "/user/delete", map[string]string{"email": "jane@example.com"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *UserAPISuite) TestListingNeverExposesSecrets() {
	s.createUser("Jane Doe", "jane@example.com", "Sup3rSecret")
	s.uploadImage("jane@example.com", "avatar.jpg", "image/jpeg", []byte("fake jpeg bytes"))

	for _, item := range s.getAll() {
		s.NotContains(item, "password")
		s.NotContains(item, "imagePath")
		s.NotContains(item, "id")
	}
}

func (s *UserAPISuite) TestUploadLifecycle() {
	s.createUser("Jane Doe", "jane@example.com", "Sup3rSecret")

	w := s.uploadImage("jane@example.com", "avatar.jpg", "image/jpeg", []byte("fake jpeg bytes"))
	s.Equal(http.StatusOK, w.Code)

	var resp struct {
		FilePath string `json:"filePath"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.NotEmpty(resp.FilePath)

	// Image path is write-once
	w = s.uploadImage("jane@example.com", "other.png", "image/png", []byte("fake png bytes"))
	s.Equal(http.StatusConflict, w.Code)
}

func (s *UserAPISuite) TestUploadRejectsNonImages() {
	s.createUser("Jane Doe", "jane@example.com", "Sup3rSecret")

	w := s.uploadImage("jane@example.com", "notes.txt", "text/plain", []byte("hello"))
	s.Equal(http.StatusUnsupportedMediaType, w.Code)

	// The rejected upload must not have claimed the image slot
	w = s.uploadImage("jane@example.com", "avatar.gif", "image/gif", []byte("fake gif bytes"))
	s.Equal(http.StatusOK, w.Code)
}

func (s *UserAPISuite) TestUploadUnknownEmailIs404() {
	w := s.uploadImage("nobody@example.com", "avatar.jpg", "image/jpeg", []byte("bytes"))
	s.Equal(http.StatusNotFound, w.Code)
}

func TestUserAPISuite(t *testing.T) {
	suite.Run(t, new(UserAPISuite))
}
