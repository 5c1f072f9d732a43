package dto

import "math"

// Tamaño de página de los listados paginados.
const DefaultPerPage = 50

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Page         int  `json:"page"`
	PerPage      int  `json:"per_page"`
	TotalRecords int  `json:"total_records"`
	TotalPages   int  `json:"total_pages"`
	HasPrev      bool `json:"has_prev"`
	HasNext      bool `json:"has_next"`
}

// NormalizePage cualquier página menor a 1 se trata como la primera.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset desplazamiento de la página (page ya normalizada). Satura en
// math.MaxInt: una página enorme queda más allá del final, nunca negativa.
func Offset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// NewPagination calcula total_pages = ceil(total/perPage); 0 cuando no hay registros.
func NewPagination(page, perPage, total int) Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Pagination{
		Page:         page,
		PerPage:      perPage,
		TotalRecords: total,
		TotalPages:   totalPages,
		HasPrev:      page > 1,
		HasNext:      page < totalPages,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
