// Package localapi serves the Lambda handlers over plain HTTP for local runs
// against DynamoDB Local or LocalStack.
package localapi

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// LambdaHandler is the signature of the handler package functions.
type LambdaHandler func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// Routes maps the HTTP API routes onto handlers.
type Routes struct {
	Create LambdaHandler
	List   LambdaHandler
	Delete LambdaHandler
}

func NewRouter(routes Routes, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/products", adapt("POST /products", routes.Create, logger))
	r.Get("/products", adapt("GET /products", routes.List, logger))
	r.Delete("/products/{id}", adapt("DELETE /products/{id}", routes.Delete, logger))

	return r
}

func adapt(routeKey string, fn LambdaHandler, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := toEvent(routeKey, r)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		resp, err := fn(r.Context(), req)
		if err != nil {
			logger.Error("handler returned an error", "route", routeKey, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeResponse(w, resp, logger)
	}
}

func toEvent(routeKey string, r *http.Request) (events.APIGatewayV2HTTPRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayV2HTTPRequest{}, err
	}

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[strings.ToLower(k)] = r.Header.Get(k)
	}

	query := make(map[string]string, len(r.URL.Query()))
	for k := range r.URL.Query() {
		query[k] = r.URL.Query().Get(k)
	}

	req := events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              routeKey,
		RawPath:               r.URL.Path,
		RawQueryString:        r.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: query,
	}
	req.RequestContext.RequestID = middleware.GetReqID(r.Context())
	req.RequestContext.TimeEpoch = time.Now().UnixMilli()
	req.RequestContext.HTTP = events.APIGatewayV2HTTPRequestContextHTTPDescription{
		Method:    r.Method,
		Path:      r.URL.Path,
		Protocol:  r.Proto,
		SourceIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}

	if id := chi.URLParam(r, "id"); id != "" {
		req.PathParameters = map[string]string{"id": id}
	}

	// API Gateway base64-encodes bodies that are not valid text.
	if utf8.Valid(body) {
		req.Body = string(body)
	} else {
		req.Body = base64.StdEncoding.EncodeToString(body)
		req.IsBase64Encoded = true
	}

	return req, nil
}

func writeResponse(w http.ResponseWriter, resp events.APIGatewayV2HTTPResponse, logger *slog.Logger) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			logger.Error("invalid base64 response body", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		body = decoded
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}
