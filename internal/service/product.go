package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/CameronXie/ecommerce-backend/internal/domain"
)

// MaxExportProducts bounds the number of products in one export.
const MaxExportProducts = 1000

// ExportRequest selects the products and columns of a CSV export. Columns are product field names.
type ExportRequest struct {
	ProductIDs      []string `json:"productIDs"`
	SelectedColumns []string `json:"selectedColumns"`
}

// ProductService manages the product catalogue
type ProductService struct {
	*ResourceService[domain.Product]
}

// NewProductService creates a new ProductService instance
func NewProductService(products Store[domain.Product]) *ProductService {
	return &ProductService{ResourceService: NewResourceService(products, domain.ProductSchema)}
}

// GetByName returns the first product with the exact name
func (s *ProductService) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}

	return s.store.FindBy(ctx, "productName", name)
}

// Export renders the requested products as CSV with a header row of the selected columns.
// Columns that are not product fields are written as empty cells.
func (s *ProductService) Export(ctx context.Context, req ExportRequest) ([]byte, error) {
	ids := distinct(req.ProductIDs)
	columns := distinct(req.SelectedColumns)

	switch {
	case len(ids) == 0:
		return nil, &ValidationError{Field: "productIDs", Message: "at least one product ID is required"}
	case len(ids) > MaxExportProducts:
		return nil, &ValidationError{Field: "productIDs", Message: fmt.Sprintf("at most %d products can be exported", MaxExportProducts)}
	case len(columns) == 0:
		return nil, &ValidationError{Field: "selectedColumns", Message: "at least one column is required"}
	}

	products, err := s.store.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for i := range products {
		row, err := exportRow(&products[i], columns)
		if err != nil {
			return nil, err
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write product %s: %w", products[i].ProductID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}

	return buf.Bytes(), nil
}

// exportRow goes through the JSON form of the product so cells match the API representation.
func exportRow(product *domain.Product, columns []string) ([]string, error) {
	data, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product %s: %w", product.ProductID, err)
	}

	fields := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", product.ProductID, err)
	}

	row := make([]string, len(columns))
	for i, column := range columns {
		value, ok := fields[column]
		if !ok || value == nil {
			continue
		}
		if text, isText := value.(string); isText {
			row[i] = escapeCell(text)
			continue
		}
		row[i] = fmt.Sprint(value)
	}

	return row, nil
}

// escapeCell quotes text that a spreadsheet would evaluate as a formula.
func escapeCell(text string) string {
	if text != "" && strings.ContainsRune("=+-@\t\r", rune(text[0])) {
		return "'" + text
	}
	return text
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
