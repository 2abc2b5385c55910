// Package catalog importa productos al catálogo desde archivos CSV, TSV o XLSX.
package catalog

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/Bodega-api/internal/application/ports"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/domain/scope"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/Bodega-api/internal/application/catalog")

// DefaultBatchSize filas por INSERT cuando no se configura otro valor.
const DefaultBatchSize = 500

// ImportUseCase carga masiva de productos con semántica skip-on-conflict por SKU.
type ImportUseCase struct {
	products  repository.ProductRepository
	publisher ports.EventPublisher
	log       *logger.Logger
	tmpDir    string
	batchSize int
}

// NewImportUseCase construye el caso de uso. tmpDir vacío usa os.TempDir().
func NewImportUseCase(
	products repository.ProductRepository,
	publisher ports.EventPublisher,
	log *logger.Logger,
	tmpDir string,
	batchSize int,
) *ImportUseCase {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ImportUseCase{
		products:  products,
		publisher: publisher,
		log:       log.Named("catalog"),
		tmpDir:    tmpDir,
		batchSize: batchSize,
	}
}

// ImportInput archivo a importar. Open solo se invoca después de validar el rol.
type ImportInput struct {
	FileName string
	Open     func() (io.ReadCloser, error)
}

// ImportReport resultado de una importación. Imported cuenta solo filas realmente insertadas.
type ImportReport struct {
	Imported int64
	Parsed   int
	Unique   int
	Skipped  int
}

// ImportedEvent payload del evento catalog.imported.
type ImportedEvent struct {
	UserID   int64  `json:"userId"`
	FileName string `json:"fileName"`
	Imported int64  `json:"imported"`
	Unique   int    `json:"unique"`
}

// Import ejecuta detección, parseo, deduplicación e inserción por lotes.
// Los lotes no comparten transacción: un fallo a mitad deja insertados los lotes previos.
func (uc *ImportUseCase) Import(ctx context.Context, id entity.Identity, in ImportInput) (*ImportReport, error) {
	ctx, span := tracer.Start(ctx, "catalog.import")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.file_name", in.FileName))

	report, err := uc.run(ctx, id, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("catalog.imported", report.Imported),
		attribute.Int("catalog.unique", report.Unique),
	)
	return report, nil
}

func (uc *ImportUseCase) run(ctx context.Context, id entity.Identity, in ImportInput) (*ImportReport, error) {
	if !scope.CanManageCatalog(id.Role) {
		return nil, fmt.Errorf("%w: solo ADMIN importa productos", domain.ErrForbidden)
	}
	if in.Open == nil {
		return nil, fmt.Errorf("%w: archivo requerido", domain.ErrInvalidInput)
	}

	upload, err := uc.save(in)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := upload.Close(); err != nil {
			uc.log.Warn().Err(err).Str("path", upload.Path).Msg("no se pudo eliminar el archivo temporal")
		}
	}()
	if upload.Size == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}

	rows, closeRows, err := uc.records(upload)
	if err != nil {
		return nil, err
	}
	unique, stats, err := Dedupe(rows)
	closeRows()
	if err != nil {
		return nil, err
	}

	imported, err := uc.insert(ctx, unique)
	if err != nil {
		return nil, err
	}
	report := &ImportReport{
		Imported: imported,
		Parsed:   stats.Parsed,
		Unique:   stats.Unique,
		Skipped:  stats.Skipped,
	}
	uc.log.Info().
		Int64("user_id", id.UserID).
		Str("file", in.FileName).
		Int("parsed", report.Parsed).
		Int("skipped", report.Skipped).
		Int("unique", report.Unique).
		Int64("imported", report.Imported).
		Msg("importación de productos terminada")

	uc.publishImported(ctx, id, in.FileName, report)
	return report, nil
}

func (uc *ImportUseCase) save(in ImportInput) (*Upload, error) {
	src, err := in.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: no se pudo abrir el archivo: %v", domain.ErrInvalidInput, err)
	}
	defer src.Close()
	return SaveUpload(uc.tmpDir, in.FileName, src)
}

// records elige el lector según el tipo de archivo. closeFn libera el archivo abierto.
func (uc *ImportUseCase) records(upload *Upload) (iter.Seq2[Row, error], func(), error) {
	if upload.IsSpreadsheet() {
		f, err := upload.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("abrir archivo temporal: %w", err)
		}
		return XLSXRecords(f), func() { _ = f.Close() }, nil
	}

	head, err := upload.OpenText()
	if err != nil {
		return nil, nil, fmt.Errorf("abrir archivo temporal: %w", err)
	}
	delim, err := DetectDelimiter(head)
	_ = head.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	f, err := upload.OpenText()
	if err != nil {
		return nil, nil, fmt.Errorf("abrir archivo temporal: %w", err)
	}
	return CSVRecords(f, delim), func() { _ = f.Close() }, nil
}

func (uc *ImportUseCase) insert(ctx context.Context, rows []Row) (int64, error) {
	var imported int64
	for start := 0; start < len(rows); start += uc.batchSize {
		end := min(start+uc.batchSize, len(rows))
		batch := make([]*entity.Product, 0, end-start)
		for _, r := range rows[start:end] {
			batch = append(batch, &entity.Product{Name: r.Name, SKU: r.SKU, Category: r.Category})
		}
		n, err := uc.products.InsertSkipExisting(ctx, batch)
		if err != nil {
			return imported, fmt.Errorf("insertar lote %d-%d: %w", start, end, err)
		}
		imported += n
	}
	return imported, nil
}

func (uc *ImportUseCase) publishImported(ctx context.Context, id entity.Identity, fileName string, report *ImportReport) {
	event := ports.Event{
		ID:         uuid.New().String(),
		Type:       ports.EventProductsImported,
		Key:        "catalog",
		OccurredAt: time.Now().UTC(),
		Payload: ImportedEvent{
			UserID:   id.UserID,
			FileName: fileName,
			Imported: report.Imported,
			Unique:   report.Unique,
		},
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.log.Warn().Err(err).Msg("evento de importación no publicado")
	}
}
