package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demo-app-api/internal/adapters/email"
	"demo-app-api/internal/adapters/storage"
	"demo-app-api/internal/handlers"
	"demo-app-api/internal/repositories/memory"
	"demo-app-api/internal/services"
	"demo-app-api/pkg/lambda"
)

const testARN = "arn:aws:lambda:us-east-1:123456789012:function:demo-users"

type fixture struct {
	router    *Router
	users     *memory.UserRepository
	processed *storage.MockFileStorage
	sender    *email.MockSender
}

func newFixture() *fixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	processed := storage.NewMockFileStorage("demo-processed-data")
	files := storage.NewMockFileStorage("demo-storage")
	sender := email.NewMockSender()
	notifier := services.NewWelcomeNotifier(sender, "noreply@demo-app.com", logger)

	r := New(logger)
	SetupRoutes(r, &RouterConfig{
		UserHandler:       handlers.NewUserHandler(services.NewUserService(users, notifier, logger)),
		ProcessingHandler: handlers.NewProcessingHandler(services.NewProcessingService(processed, logger)),
		AnalyticsHandler:  handlers.NewAnalyticsHandler(services.NewAnalyticsService(users, files, logger)),
	})

	return &fixture{router: r, users: users, processed: processed, sender: sender}
}

func decode(t *testing.T, resp *lambda.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	return body
}

func TestDispatch_Routes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ec := &lambda.ExecutionContext{
		FunctionName:       "demo-users",
		InvokedFunctionARN: testARN,
		Deadline:           time.Now().Add(30 * time.Second),
	}

	resp := f.router.Dispatch(ctx, &lambda.Request{
		Method: http.MethodPost,
		Path:   UsersPath,
		Body:   []byte(`{"name":"Ada","email":"ada@example.com"}`),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode(t, resp)["data"].(map[string]any)["id"].(string)

	resp = f.router.Dispatch(ctx, &lambda.Request{Method: http.MethodGet, Path: UserPathPrefix + id})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ada", decode(t, resp)["data"].(map[string]any)["name"])

	resp = f.router.Dispatch(ctx, &lambda.Request{Method: http.MethodGet, Path: UsersPath})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decode(t, resp)["count"])

	resp = f.router.Dispatch(ctx, &lambda.Request{Method: http.MethodPost, Path: ProcessPath, Body: []byte(`{"records":[{"a":1}]}`)})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, f.processed.FileCount())

	resp = f.router.Dispatch(ctx, &lambda.Request{Method: http.MethodGet, Path: AnalyticsPath, Context: ec})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["totalUsers"])
	assert.Equal(t, "us-east-1", data["region"])
	assert.Equal(t, "demo-users", data["functionName"])
}

func TestDispatch_NotFound(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name       string
		req        *lambda.Request
		wantMethod string
		wantPath   string
	}{
		{name: "unknown path", req: &lambda.Request{Method: http.MethodGet, Path: "/lambda/unknown"}, wantMethod: "GET", wantPath: "/lambda/unknown"},
		{name: "wrong method", req: &lambda.Request{Method: http.MethodDelete, Path: UsersPath}, wantMethod: "DELETE", wantPath: UsersPath},
		{name: "post under user prefix", req: &lambda.Request{Method: http.MethodPost, Path: UserPathPrefix + "abc"}, wantMethod: "POST", wantPath: UserPathPrefix + "abc"},
		{name: "defaults", req: &lambda.Request{}, wantMethod: "GET", wantPath: "/"},
		{name: "nil request", req: nil, wantMethod: "GET", wantPath: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.router.Dispatch(context.Background(), tt.req)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, lambda.DefaultHeaders(), resp.Headers)

			body := decode(t, resp)
			assert.Equal(t, "Route not found", body["error"])
			assert.Equal(t, tt.wantMethod, body["method"])
			assert.Equal(t, tt.wantPath, body["path"])
		})
	}

	assert.Empty(t, f.sender.Messages())
	assert.Zero(t, f.processed.FileCount())
}

func TestDispatch_ExactRouteWinsOverPrefix(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	r := New(logger)

	var hit string
	r.HandlePrefix(http.MethodGet, "/lambda/users/", "id", func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		hit = "prefix:" + req.PathParams["id"]
		return lambda.JSON(http.StatusOK, nil)
	})
	r.Handle(http.MethodGet, "/lambda/users/me", func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		hit = "exact"
		return lambda.JSON(http.StatusOK, nil)
	})

	r.Dispatch(context.Background(), &lambda.Request{Method: http.MethodGet, Path: "/lambda/users/me"})
	assert.Equal(t, "exact", hit)

	r.Dispatch(context.Background(), &lambda.Request{Method: http.MethodGet, Path: "/lambda/users/a/b/c"})
	assert.Equal(t, "prefix:c", hit)
}

func TestDispatch_PathParamDoesNotMutateRequest(t *testing.T) {
	f := newFixture()
	req := &lambda.Request{Method: http.MethodGet, Path: UserPathPrefix + "missing"}

	resp := f.router.Dispatch(context.Background(), req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"User not found"}`, string(resp.Body))
	assert.Nil(t, req.PathParams)
}

func TestDispatch_HandlerFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := New(logger)

	r.Handle(http.MethodGet, "/boom", func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		panic("kaboom")
	})
	r.Handle(http.MethodGet, "/err", func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		return nil, errors.New("broken pipe")
	})
	r.Handle(http.MethodGet, "/nil", func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		return nil, nil
	})

	tests := map[string]string{
		"/boom": "kaboom",
		"/err":  "broken pipe",
		"/nil":  "handler returned no response",
	}

	for path, message := range tests {
		resp := r.Dispatch(context.Background(), &lambda.Request{Method: http.MethodGet, Path: path})
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, path)
		assert.Equal(t, lambda.DefaultHeaders(), resp.Headers)

		body := decode(t, resp)
		assert.Equal(t, "Internal server error", body["error"])
		assert.Equal(t, message, body["message"])
	}

	var errorEntries int
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			errorEntries++
		}
	}
	assert.Equal(t, 2, errorEntries)
}

func TestDispatch_LogsEvent(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := New(logger)

	r.Dispatch(context.Background(), &lambda.Request{
		Method:  http.MethodGet,
		Path:    "/nowhere",
		Context: &lambda.ExecutionContext{RequestID: "req-42"},
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Received request", entry.Message)
	assert.Equal(t, "req-42", entry.Data["request_id"])
	assert.Equal(t, "/nowhere", entry.Data["path"])
}

func TestHandler_NeverErrors(t *testing.T) {
	f := newFixture()
	resp, err := f.router.Handler()(context.Background(), &lambda.Request{Path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDispatch_CreateDoesNotPersistInvalidUser(t *testing.T) {
	f := newFixture()

	resp := f.router.Dispatch(context.Background(), &lambda.Request{Method: http.MethodPost, Path: UsersPath, Body: []byte(`{"name":"Ada"}`)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	users, err := f.users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
