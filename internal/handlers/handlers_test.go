package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demo-app-api/internal/adapters/email"
	"demo-app-api/internal/adapters/storage"
	"demo-app-api/internal/models"
	"demo-app-api/internal/repositories/memory"
	"demo-app-api/internal/services"
	"demo-app-api/pkg/lambda"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func decodeBody(t *testing.T, resp *lambda.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	return body
}

func assertCORS(t *testing.T, resp *lambda.Response) {
	t.Helper()
	assert.Equal(t, lambda.DefaultHeaders(), resp.Headers)
}

// brokenUserService fails every call with err
type brokenUserService struct {
	err error
}

func (s *brokenUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return nil, s.err
}

func (s *brokenUserService) CreateUser(ctx context.Context, req *services.CreateUserRequest) (*models.User, error) {
	return nil, s.err
}

func (s *brokenUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return nil, s.err
}

func newUserHandler() (*UserHandler, *memory.UserRepository, *email.MockSender) {
	repo := memory.NewUserRepository()
	sender := email.NewMockSender()
	notifier := services.NewWelcomeNotifier(sender, "noreply@demo-app.com", testLogger())
	return NewUserHandler(services.NewUserService(repo, notifier, testLogger())), repo, sender
}

func TestUserHandler_CreateAndGet(t *testing.T) {
	h, _, sender := newUserHandler()
	ctx := context.Background()

	resp, err := h.HandleCreate(ctx, &lambda.Request{Body: []byte(`{"name":"Ada","email":"ada@example.com","role":"admin"}`)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assertCORS(t, resp)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User created successfully", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "Ada", data["name"])
	assert.Equal(t, "lambda", data["source"])
	assert.Equal(t, data["createdAt"], data["updatedAt"])
	assert.NotContains(t, data, "role")
	assert.Len(t, sender.Messages(), 1)

	id := data["id"].(string)
	resp, err = h.HandleGet(ctx, &lambda.Request{PathParams: map[string]string{"id": id}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assertCORS(t, resp)
	assert.Equal(t, id, decodeBody(t, resp)["data"].(map[string]any)["id"])
}

func TestUserHandler_CreateRejectsInvalidBodies(t *testing.T) {
	bodies := []string{
		``,
		`not json`,
		`[1,2]`,
		`{"name":"Ada"}`,
		`{"email":"ada@example.com"}`,
		`{"name":"","email":"ada@example.com"}`,
		`{"name":0,"email":"ada@example.com"}`,
		`{"name":false,"email":"ada@example.com"}`,
		`{"name":[],"email":"ada@example.com"}`,
		`{"name":null,"email":"ada@example.com"}`,
	}

	for _, raw := range bodies {
		t.Run(raw, func(t *testing.T) {
			h, repo, sender := newUserHandler()

			resp, err := h.HandleCreate(context.Background(), &lambda.Request{Body: []byte(raw)})
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assertCORS(t, resp)
			assert.JSONEq(t, `{"error":"Name and email are required"}`, string(resp.Body))

			count, err := repo.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, count)
			assert.Empty(t, sender.Messages())
		})
	}
}

func TestUserHandler_CreateAcceptsNonStringValues(t *testing.T) {
	h, _, _ := newUserHandler()

	resp, err := h.HandleCreate(context.Background(), &lambda.Request{Body: []byte(`{"name":42,"email":"ada@example.com"}`)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "42", decodeBody(t, resp)["data"].(map[string]any)["name"])
}

func TestUserHandler_CreateSucceedsWhenEmailFails(t *testing.T) {
	h, repo, sender := newUserHandler()
	sender.FailWith(errors.New("MessageRejected"))

	resp, err := h.HandleCreate(context.Background(), &lambda.Request{Body: []byte(`{"name":"Ada","email":"ada@example.com"}`)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserHandler_List(t *testing.T) {
	h, repo, _ := newUserHandler()

	resp, err := h.HandleList(context.Background(), &lambda.Request{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, string(resp.Body))

	now := time.Now()
	require.NoError(t, repo.Put(context.Background(), models.NewUser("a", "a@example.com", now)))
	require.NoError(t, repo.Put(context.Background(), models.NewUser("b", "b@example.com", now)))

	resp, err = h.HandleList(context.Background(), &lambda.Request{})
	require.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["data"], 2)
}

func TestUserHandler_GetNotFound(t *testing.T) {
	h, _, _ := newUserHandler()

	resp, err := h.HandleGet(context.Background(), &lambda.Request{PathParams: map[string]string{"id": "missing"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertCORS(t, resp)
	assert.JSONEq(t, `{"error":"User not found"}`, string(resp.Body))
}

func TestUserHandler_StoreFailures(t *testing.T) {
	h := NewUserHandler(&brokenUserService{err: errors.New("table missing")})
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() (*lambda.Response, error)
		label string
	}{
		{
			name:  "list",
			call:  func() (*lambda.Response, error) { return h.HandleList(ctx, &lambda.Request{}) },
			label: "Failed to get users",
		},
		{
			name: "create",
			call: func() (*lambda.Response, error) {
				return h.HandleCreate(ctx, &lambda.Request{Body: []byte(`{"name":"Ada","email":"a@b.c"}`)})
			},
			label: "Failed to create user",
		},
		{
			name: "get",
			call: func() (*lambda.Response, error) {
				return h.HandleGet(ctx, &lambda.Request{PathParams: map[string]string{"id": "x"}})
			},
			label: "Failed to get user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assertCORS(t, resp)

			body := decodeBody(t, resp)
			assert.Equal(t, tt.label, body["error"])
			assert.Equal(t, "table missing", body["message"])
		})
	}
}

func TestProcessingHandler(t *testing.T) {
	fs := storage.NewMockFileStorage("demo-processed-data")
	h := NewProcessingHandler(services.NewProcessingService(fs, testLogger()))

	tests := []struct {
		name    string
		body    string
		records float64
	}{
		{name: "records array", body: `{"records":[1,2,3]}`, records: 3},
		{name: "records not an array", body: `{"records":"abc"}`, records: 0},
		{name: "empty body", body: ``, records: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.HandleProcess(context.Background(), &lambda.Request{Body: []byte(tt.body)})
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assertCORS(t, resp)

			body := decodeBody(t, resp)
			data := body["data"].(map[string]any)
			results := data["processingResults"].(map[string]any)
			assert.Equal(t, tt.records, results["recordsProcessed"])
			assert.Equal(t, "completed", results["status"])
			assert.Equal(t, "Data processed successfully", results["summary"])
			assert.Equal(t, "mock://demo-processed-data/processed-data/"+data["id"].(string)+".json", body["s3Location"])
		})
	}

	fs.FailOn("Store", errors.New("NoSuchBucket"))
	resp, err := h.HandleProcess(context.Background(), &lambda.Request{Body: []byte(`{}`)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to process data", decodeBody(t, resp)["error"])
}

func TestProcessingHandler_KeepsNumbersExact(t *testing.T) {
	fs := storage.NewMockFileStorage("demo-processed-data")
	h := NewProcessingHandler(services.NewProcessingService(fs, testLogger()))

	resp, err := h.HandleProcess(context.Background(), &lambda.Request{
		Body: []byte(`{"orderId":12345678901234567891,"price":0.1,"records":[{"qty":9007199254740993}]}`),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(resp.Body), `"orderId":12345678901234567891`)
	assert.Contains(t, string(resp.Body), `"qty":9007199254740993`)
	assert.Contains(t, string(resp.Body), `"recordsProcessed":1`)

	var body struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &body))

	stored, contentType, ok := fs.Get("processed-data/" + body.Data.ID + ".json")
	require.True(t, ok)
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, string(stored), `"orderId":12345678901234567891`)
	assert.Contains(t, string(stored), `"price":0.1`)
}

func TestAnalyticsHandler(t *testing.T) {
	repo := memory.NewUserRepository()
	require.NoError(t, repo.Put(context.Background(), models.NewUser("a", "a@example.com", time.Now())))
	files := storage.NewMockFileStorage("demo-storage")
	h := NewAnalyticsHandler(services.NewAnalyticsService(repo, files, testLogger()))

	req := &lambda.Request{Context: &lambda.ExecutionContext{
		FunctionName:       "users",
		InvokedFunctionARN: "arn:aws:lambda:ap-southeast-2:123456789012:function:users",
		Deadline:           time.Now().Add(10 * time.Second),
	}}

	resp, err := h.HandleAnalytics(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assertCORS(t, resp)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["totalUsers"])
	assert.Equal(t, float64(0), data["totalFiles"])
	assert.Equal(t, "ap-southeast-2", data["region"])
	assert.Equal(t, "users", data["functionName"])
	assert.Greater(t, data["lambdaInvocations"], float64(0))

	resp, err = h.HandleAnalytics(context.Background(), &lambda.Request{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to get analytics", decodeBody(t, resp)["error"])
}

func TestParseJSONObject(t *testing.T) {
	assert.Equal(t, map[string]any{}, parseJSONObject(nil))
	assert.Equal(t, map[string]any{}, parseJSONObject([]byte(`null`)))
	assert.Equal(t, map[string]any{}, parseJSONObject([]byte(`"str"`)))
	assert.Equal(t, map[string]any{}, parseJSONObject([]byte(`{"a":1} {"b":2}`)))
	assert.Equal(t, map[string]any{"a": json.Number("1")}, parseJSONObject([]byte(`{"a":1}`)))
}

func TestTextField(t *testing.T) {
	payload := parseJSONObject([]byte(`{"s":"Ada","n":42,"zero":0,"t":true,"f":false,"list":[1],"empty":[],"obj":{"k":"v"},"null":null}`))

	tests := []struct {
		key  string
		want string
	}{
		{"s", "Ada"},
		{"n", "42"},
		{"zero", ""},
		{"t", "true"},
		{"f", ""},
		{"list", "[1]"},
		{"empty", ""},
		{"obj", `{"k":"v"}`},
		{"null", ""},
		{"missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, textField(payload, tt.key))
		})
	}
}
