// seed_catalog carga categorías y productos desde un CSV exportado de la hoja de inventario.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto lee catalogo.csv del directorio actual. El archivo viene en ISO-8859-1 con
// separador ';' y columnas: categoria;nombre;descripcion;precio;stock;imagen_url
// La primera fila es cabecera. Las categorías inexistentes se crean.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

type row struct {
	line        int
	category    string
	name        string
	description string
	price       decimal.Decimal
	stock       int
	imageURL    string
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed_catalog")

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := readRows(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)

	ids, err := categoryIndex(ctx, categories)
	if err != nil {
		log.Fatal().Err(err).Msg("listar categorías")
	}

	var created int
	for _, r := range rows {
		key := strings.ToLower(r.category)
		catID, ok := ids[key]
		if !ok {
			c := &entity.Category{Name: r.category, Active: true}
			if err := categories.Create(ctx, c); err != nil {
				log.Fatal().Err(err).Str("categoria", r.category).Msg("crear categoría")
			}
			catID = c.ID
			ids[key] = catID
			log.Info().Int64("id", catID).Str("categoria", r.category).Msg("categoría creada")
		}

		p := &entity.Product{
			Name:        r.name,
			Description: r.description,
			Price:       r.price,
			Stock:       r.stock,
			CategoryID:  catID,
			ImageURL:    r.imageURL,
		}
		if err := products.Create(ctx, p); err != nil {
			log.Error().Err(err).Int("linea", r.line).Str("nombre", r.name).Msg("producto omitido")
			continue
		}
		created++
	}
	log.Info().Int("productos", created).Int("filas", len(rows)).Msg("carga terminada")
}

func categoryIndex(ctx context.Context, repo repository.CategoryRepository) (map[string]int64, error) {
	cats, err := repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int64, len(cats))
	for _, c := range cats {
		ids[strings.ToLower(c.Name)] = c.ID
	}
	return ids, nil
}

// readRows valida todas las filas antes de tocar la base.
func readRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}

	var (
		rows []row
		errs []error
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		parsed, err := parseRow(line, rec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rows = append(rows, parsed)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return rows, nil
}

func parseRow(line int, rec []string) (row, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	r := row{line: line, category: rec[0], name: rec[1], description: rec[2], imageURL: rec[5]}
	if r.category == "" || r.name == "" {
		return row{}, fmt.Errorf("línea %d: categoría y nombre son obligatorios", line)
	}
	// la hoja usa coma decimal
	price, err := decimal.NewFromString(strings.ReplaceAll(rec[3], ",", "."))
	if err != nil || !price.IsPositive() {
		return row{}, fmt.Errorf("línea %d: precio inválido %q", line, rec[3])
	}
	stock, err := strconv.Atoi(rec[4])
	if err != nil || stock < 0 {
		return row{}, fmt.Errorf("línea %d: stock inválido %q", line, rec[4])
	}
	r.price = price.Round(2)
	r.stock = stock
	return r, nil
}
