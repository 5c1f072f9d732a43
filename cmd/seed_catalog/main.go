// seed_catalog importa un catálogo de productos desde CSV (UTF-8 o ISO-8859-1).
// Cada producto se crea por el caso de uso, así queda su movimiento de creación.
//
// Uso: go run ./cmd/seed_catalog -file catalogo.csv [-encoding auto|utf-8|latin1] [-dry-run]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/inventario-scomm/internal/application/inventory"
	"github.com/jhoicas/inventario-scomm/internal/domain"
	"github.com/jhoicas/inventario-scomm/internal/domain/entity"
	"github.com/jhoicas/inventario-scomm/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-scomm/pkg/config"
	"github.com/jhoicas/inventario-scomm/pkg/logger"
	"github.com/jhoicas/inventario-scomm/pkg/validator"
)

func main() {
	file := flag.String("file", "catalogo.csv", "ruta del CSV")
	encoding := flag.String("encoding", "auto", "auto, utf-8 o latin1")
	asUser := flag.String("user", "admin", "usuario que figura en el historial")
	dryRun := flag.Bool("dry-run", false, "solo validar, no escribir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("seed_catalog")

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	r, err := decodeCatalog(raw, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("decodificar CSV")
	}
	items, err := parseCatalog(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar validador")
	}
	for i, in := range items {
		if err := v.Validate(in); err != nil {
			log.Fatal().Strs("errores", validator.Messages(err)).Int("fila", i+2).Msg("producto inválido")
		}
	}
	if *dryRun {
		log.Info().Int("productos", len(items)).Msg("validación correcta, sin cambios")
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema")
	}

	user, err := postgres.NewUserRepository(pool).GetByUsername(ctx, *asUser)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if user == nil {
		log.Fatal().Str("user", *asUser).Msg("usuario no existe; arranque la API una vez para crear los usuarios por defecto")
	}
	actor := &entity.Actor{UserID: user.ID, Username: user.Username, Role: user.Role}

	uc := inventory.NewProductUseCase(
		postgres.NewProductRepository(pool),
		inventory.NewLedgerWriter(postgres.NewInventoryMovementRepository(pool), log),
		log,
	)
	var created, skipped int
	for _, in := range items {
		if _, err := uc.Create(ctx, in, actor); err != nil {
			if errors.Is(err, domain.ErrDuplicateSKU) {
				skipped++
				log.Warn().Str("sku", in.SKU).Str("name", in.Name).Msg("SKU existente, se omite")
				continue
			}
			log.Fatal().Err(err).Str("name", in.Name).Msg("crear producto")
		}
		created++
	}
	fmt.Printf("Importados %d productos (%d omitidos) desde %s\n", created, skipped, *file)
}
