package seed

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ProductCreator crea un producto (lo implementa *usecase.ProductUseCase).
type ProductCreator interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

// ImportProductsCSV carga un catálogo "id,name,category". La primera fila puede ser encabezado.
// El archivo puede venir en UTF-8 o ISO-8859-1 (exportaciones de Excel en Windows).
// Los IDs repetidos se omiten; una fila inválida aborta con el número de línea.
func ImportProductsCSV(ctx context.Context, r io.Reader, products ProductCreator, log *logger.Logger) (Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("leer csv: %w", err)
	}
	text, err := decodeText(raw)
	if err != nil {
		return Result{}, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var res Result
	line := 0
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("csv línea %d: %w", line, err)
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		if len(rec) < 2 {
			return res, fmt.Errorf("csv línea %d: se esperan al menos id,name", line)
		}
		in := dto.CreateProductRequest{
			ID:   strings.TrimSpace(rec[0]),
			Name: strings.TrimSpace(rec[1]),
		}
		if len(rec) > 2 {
			in.Category = strings.TrimSpace(rec[2])
		}
		if in.ID == "" || in.Name == "" {
			return res, fmt.Errorf("csv línea %d: id y name son requeridos", line)
		}
		if _, err := products.Create(ctx, in); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				res.Skipped++
				log.Debug().Str("product_id", in.ID).Int("line", line).Msg("producto ya existe, omitido")
				continue
			}
			return res, fmt.Errorf("csv línea %d: %w", line, err)
		}
		res.Created++
	}
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("catálogo importado")
	return res, nil
}

// decodeText devuelve el contenido como UTF-8. Si no es UTF-8 válido se asume ISO-8859-1.
func decodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")) // BOM
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decodificar ISO-8859-1: %w", err)
	}
	return string(out), nil
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "id")
}
