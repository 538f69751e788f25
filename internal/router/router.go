package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"demo-app-api/pkg/lambda"
)

// route is an exact method + path match
type route struct {
	method string
	path   string
}

// prefixRoute matches any path under prefix and exposes the final path
// segment as the named parameter
type prefixRoute struct {
	method  string
	prefix  string
	param   string
	handler lambda.HandlerFunc
}

// Router dispatches requests to handlers. Exact routes are matched before
// prefix routes.
type Router struct {
	exact    map[route]lambda.HandlerFunc
	prefixes []prefixRoute
	logger   *logrus.Logger
}

// New creates an empty router
func New(logger *logrus.Logger) *Router {
	return &Router{
		exact:  make(map[route]lambda.HandlerFunc),
		logger: logger,
	}
}

// Handle registers h for an exact method and path
func (r *Router) Handle(method, path string, h lambda.HandlerFunc) {
	r.exact[route{method: method, path: path}] = h
}

// HandlePrefix registers h for every path beginning with prefix. The segment
// after the last "/" is passed to h as the path parameter named param.
func (r *Router) HandlePrefix(method, prefix, param string, h lambda.HandlerFunc) {
	r.prefixes = append(r.prefixes, prefixRoute{
		method:  method,
		prefix:  prefix,
		param:   param,
		handler: h,
	})
}

// Dispatch routes req and always returns a response. Handler errors and
// panics become 500 responses.
func (r *Router) Dispatch(ctx context.Context, req *lambda.Request) (resp *lambda.Response) {
	if req == nil {
		req = &lambda.Request{}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	path := req.Path
	if path == "" {
		path = "/"
	}

	r.logEvent(req, method, path)

	handler, routed := r.match(req, method, path)
	if handler == nil {
		return notFound(method, path)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithFields(logrus.Fields{
				"method": method,
				"path":   path,
				"panic":  rec,
			}).Error("Handler panicked")
			resp = InternalError(fmt.Sprint(rec))
		}
	}()

	resp, err := handler(ctx, routed)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		}).Error("Handler failed")
		return InternalError(err.Error())
	}
	if resp == nil {
		return InternalError("handler returned no response")
	}

	return resp
}

// Handler exposes Dispatch as a lambda.HandlerFunc
func (r *Router) Handler() lambda.HandlerFunc {
	return func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		return r.Dispatch(ctx, req), nil
	}
}

// match finds the handler for method and path and returns the request it
// should receive, carrying any extracted path parameter.
func (r *Router) match(req *lambda.Request, method, path string) (lambda.HandlerFunc, *lambda.Request) {
	routed := *req
	routed.Method = method
	routed.Path = path

	if h, ok := r.exact[route{method: method, path: path}]; ok {
		return h, &routed
	}

	for _, p := range r.prefixes {
		if p.method != method || !strings.HasPrefix(path, p.prefix) {
			continue
		}

		params := make(map[string]string, len(req.PathParams)+1)
		for k, v := range req.PathParams {
			params[k] = v
		}
		params[p.param] = path[strings.LastIndex(path, "/")+1:]
		routed.PathParams = params

		return p.handler, &routed
	}

	return nil, nil
}

func (r *Router) logEvent(req *lambda.Request, method, path string) {
	fields := logrus.Fields{
		"method": method,
		"path":   path,
	}
	if req.Context != nil && req.Context.RequestID != "" {
		fields["request_id"] = req.Context.RequestID
	}
	r.logger.WithFields(fields).Info("Received request")
}

type notFoundResponse struct {
	Error  string `json:"error"`
	Path   string `json:"path"`
	Method string `json:"method"`
}

type internalErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func notFound(method, path string) *lambda.Response {
	resp, err := lambda.JSON(http.StatusNotFound, notFoundResponse{
		Error:  "Route not found",
		Path:   path,
		Method: method,
	})
	if err != nil {
		return InternalError(err.Error())
	}
	return resp
}

// InternalError builds the 500 response returned when a handler fails
func InternalError(message string) *lambda.Response {
	resp, err := lambda.JSON(http.StatusInternalServerError, internalErrorResponse{
		Error:   "Internal server error",
		Message: message,
	})
	if err != nil {
		return &lambda.Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    lambda.DefaultHeaders(),
			Body:       []byte(`{"error":"Internal server error"}`),
		}
	}
	return resp
}
