package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/CameronXie/ecommerce-backend/internal/api/rest/response"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
	"github.com/CameronXie/ecommerce-backend/internal/service"
)

const exportFilename = "products.csv"

// ProductService defines the catalogue queries served beside the CRUD routes
type ProductService interface {
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	Export(ctx context.Context, req service.ExportRequest) ([]byte, error)
}

// ProductHandler serves product lookups by name and CSV exports
type ProductHandler struct {
	products ProductService
	logger   *slog.Logger
}

// NewProductHandler creates a new ProductHandler instance
func NewProductHandler(products ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

// Register adds the product query routes to mux.
func (h *ProductHandler) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/products/productName", h.GetByName)
	mux.HandleFunc("POST "+prefix+"/products/export", h.Export)
}

// GetByName handles GET /products/productName?name= - retrieves a product by exact name
func (h *ProductHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, product)
}

// Export handles POST /products/export - renders the selected products as a CSV attachment
func (h *ProductHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req service.ExportRequest
	if err := decodeRecord(w, r, &req); err != nil {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestBodyMessage, err.Error())
		return
	}

	data, err := h.products.Export(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.FileResponse(w, "text/csv", exportFilename, data)
}
