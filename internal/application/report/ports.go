package report

import "context"

// Exporter serializa una Table a un formato de archivo (csv, xlsx, pdf).
type Exporter interface {
	Format() string
	ContentType() string
	Export(ctx context.Context, t *Table) ([]byte, error)
}

// ExportFile archivo listo para enviar como adjunto.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
