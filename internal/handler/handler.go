// Package handler adapts the catalog service to API Gateway HTTP API events.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/sakarghimire/product-management-service/internal/catalog"
	"github.com/sakarghimire/product-management-service/internal/product"
)

// Service is the part of catalog.Service the handlers call.
type Service interface {
	CreateProduct(ctx context.Context, np product.NewProduct) (*product.Record, error)
	ListProducts(ctx context.Context) ([]product.Record, error)
	DeleteProduct(ctx context.Context, id string) catalog.DeleteResult
}

type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

var allHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Methods": "*",
	"Access-Control-Allow-Origin":  "*",
}

type messageBody struct {
	Message   string `json:"message"`
	ProductID string `json:"productId,omitempty"`
}

type listBody struct {
	Products []product.Record `json:"products"`
	Count    int              `json:"count"`
}

func respond(status int, body any) events.APIGatewayV2HTTPResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload = []byte(`{"message":"Internal server error"}`)
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    headers(),
		Body:       string(payload),
	}
}

func headers() map[string]string {
	h := make(map[string]string, len(allHeaders))
	for k, v := range allHeaders {
		h[k] = v
	}
	return h
}

func message(status int, msg string) events.APIGatewayV2HTTPResponse {
	return respond(status, messageBody{Message: msg})
}

// Create handles POST /products.
func (h *Handler) Create(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body, err := requestBody(req)
	if err != nil {
		return message(http.StatusBadRequest, "Invalid request payload"), nil
	}
	if len(body) == 0 {
		return message(http.StatusBadRequest, "Empty request body"), nil
	}

	var np product.NewProduct
	if err := json.Unmarshal(body, &np); err != nil {
		return message(http.StatusBadRequest, "Invalid request payload"), nil
	}

	rec, err := h.svc.CreateProduct(ctx, np)
	switch {
	case errors.Is(err, product.ErrInvalidInput):
		return message(http.StatusBadRequest, err.Error()), nil
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to create product", "error", err)
		return message(http.StatusInternalServerError, "Failed to create product"), nil
	}

	return respond(http.StatusCreated, rec), nil
}

// List handles GET /products.
func (h *Handler) List(ctx context.Context, _ events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	records, err := h.svc.ListProducts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", "error", err)
		return message(http.StatusInternalServerError, "Failed to list products"), nil
	}

	return respond(http.StatusOK, listBody{Products: records, Count: len(records)}), nil
}

// Delete handles DELETE /products/{id}.
func (h *Handler) Delete(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	res := h.svc.DeleteProduct(ctx, req.PathParameters["id"])

	switch res.State {
	case catalog.StateDeleted:
		return respond(http.StatusOK, messageBody{Message: "Product deleted successfully", ProductID: res.ProductID}), nil
	case catalog.StateRejected:
		return message(http.StatusBadRequest, "Product ID is required"), nil
	case catalog.StateNotFound:
		return message(http.StatusNotFound, "Product not found"), nil
	case catalog.StateFetchFailed:
		return message(http.StatusInternalServerError, "Failed to retrieve product"), nil
	case catalog.StateDeleteFailed:
		return message(http.StatusInternalServerError, "Failed to delete product"), nil
	default:
		h.logger.ErrorContext(ctx, "delete ended in a non-terminal state", "state", res.State)
		return message(http.StatusInternalServerError, "Internal server error"), nil
	}
}

// Route dispatches on method and path for the single-function deployment.
func (h *Handler) Route(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	switch req.RequestContext.HTTP.Method {
	case http.MethodPost:
		if req.PathParameters["id"] == "" {
			return h.Create(ctx, req)
		}
	case http.MethodGet:
		if req.PathParameters["id"] == "" {
			return h.List(ctx, req)
		}
	case http.MethodDelete:
		return h.Delete(ctx, req)
	case http.MethodOptions:
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusNoContent, Headers: headers()}, nil
	}

	return message(http.StatusMethodNotAllowed, "Method not allowed"), nil
}

func requestBody(req events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if req.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(req.Body)
	}
	return []byte(req.Body), nil
}
