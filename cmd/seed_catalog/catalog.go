package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-scomm/internal/application/dto"
)

// Encabezados aceptados por campo; incluye los de inventario.csv.
var headerAliases = map[string]string{
	"name":         "name",
	"nombre":       "name",
	"sku":          "sku",
	"category":     "category",
	"categoria":    "category",
	"categoría":    "category",
	"quantity":     "quantity",
	"cantidad":     "quantity",
	"price":        "price",
	"precio":       "price",
	"provider":     "provider",
	"proveedor":    "provider",
	"stock_min":    "stock_min",
	"stock minimo": "stock_min",
	"stock mínimo": "stock_min",
}

// decodeCatalog devuelve un lector UTF-8. Entradas que no son UTF-8 válido se
// leen como ISO-8859-1 (exportaciones de Excel en Windows).
func decodeCatalog(raw []byte, encoding string) (io.Reader, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
		return bytes.NewReader(raw), nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	case "", "auto":
		if utf8.Valid(raw) {
			return bytes.NewReader(raw), nil
		}
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
}

// parseCatalog lee el CSV y arma una solicitud de creación por fila.
// Las columnas desconocidas (ID, Fecha de Creación) se ignoran.
func parseCatalog(r io.Reader) ([]dto.CreateProductRequest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if field, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[field] = i
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("falta la columna de nombre")
	}

	var out []dto.CreateProductRequest
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(field string) string {
			i, ok := cols[field]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("name") == "" {
			continue
		}

		in := dto.CreateProductRequest{
			Name:     get("name"),
			SKU:      get("sku"),
			Category: get("category"),
			Provider: get("provider"),
		}
		if in.Quantity, err = atoiOr(get("quantity"), 0); err != nil {
			return nil, fmt.Errorf("línea %d: cantidad: %w", line, err)
		}
		if s := get("price"); s != "" {
			if in.Price, err = decimal.NewFromString(s); err != nil {
				return nil, fmt.Errorf("línea %d: precio: %w", line, err)
			}
		}
		if s := get("stock_min"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("línea %d: stock mínimo: %w", line, err)
			}
			in.StockMin = &n
		}
		out = append(out, in)
	}
	return out, nil
}

func atoiOr(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
