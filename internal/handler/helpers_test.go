package handler_test

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

	"classroom/internal/auth"
	"classroom/internal/handler"
	"classroom/internal/media"
	"classroom/internal/middleware"
	"classroom/internal/model"
	"classroom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Мок репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) EmailTaken(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file io.Reader, size int64, displayName string) (*media.Object, error) {
	args := m.Called(ctx, file, size, displayName)
	obj, _ := args.Get(0).(*media.Object)
	return obj, args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

const testSecret = "test-secret"

type testEnv struct {
	router   *gin.Engine
	repo     *MockUserRepository
	uploader *MockUploader
	tokens   *auth.Manager
	callerID uuid.UUID
}

func setupTest() *testEnv {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	repo := new(MockUserRepository)
	uploader := new(MockUploader)
	tokens := auth.NewManager(testSecret, time.Hour)
	users := service.NewUserService(repo, uploader, zap.NewNop())

	userHandler := handler.NewUserHandler(users)
	profileHandler := handler.NewProfileHandler(users)
	authHandler := handler.NewAuthHandler(users, tokens)

	r.POST("/login", authHandler.Login)

	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	authorized.GET("/users", userHandler.List)
	authorized.GET("/users/:id", userHandler.Show)
	authorized.POST("/users", userHandler.Store)
	authorized.PUT("/users/:id", userHandler.Update)
	authorized.PATCH("/users/:id", userHandler.Update)
	authorized.DELETE("/users/:id", userHandler.Destroy)
	authorized.PUT("/profile", profileHandler.Update)
	authorized.PUT("/profile/password", profileHandler.ChangePassword)

	return &testEnv{router: r, repo: repo, uploader: uploader, tokens: tokens, callerID: uuid.New()}
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	token, err := e.tokens.GenerateToken(e.callerID.String())
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	return recorder(e, req)
}

func recorder(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

type fileField struct {
	field string
	name  string
	size  int
}

func multipartBody(t *testing.T, fields map[string]string, file *fileField) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile(file.field, file.name)
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte("x"), file.size))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

type envelope struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	Data    json.RawMessage      `json:"data"`
	Errors  []service.FieldError `json:"errors"`
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	return env
}

func fieldNames(errs []service.FieldError) []string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Field
	}
	return names
}
