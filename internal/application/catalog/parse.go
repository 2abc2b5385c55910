package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

// Row fila normalizada del archivo. Line es el número de registro (1 = encabezado).
type Row struct {
	Name     string
	SKU      string
	Category string
	Line     int
}

// Blank indica una fila sin ningún campo útil.
func (r Row) Blank() bool {
	return r.Name == "" && r.SKU == "" && r.Category == ""
}

// Complete indica que los tres campos requeridos vienen informados.
func (r Row) Complete() bool {
	return r.Name != "" && r.SKU != "" && r.Category != ""
}

// columns posición de cada campo en el registro; -1 si el encabezado no lo trae.
type columns struct {
	name, sku, category int
}

func mapHeader(header []string) columns {
	cols := columns{name: -1, sku: -1, category: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			cols.name = i
		case "sku":
			cols.sku = i
		case "category":
			cols.category = i
		}
	}
	return cols
}

func (c columns) row(record []string, line int) Row {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return Row{Name: field(c.name), SKU: field(c.sku), Category: field(c.category), Line: line}
}

// CSVRecords recorre un archivo delimitado. La primera línea es el encabezado;
// las columnas se reconocen por nombre, sin importar orden ni mayúsculas.
func CSVRecords(r io.Reader, delim rune) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		cr := csv.NewReader(r)
		cr.Comma = delim
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		cr.ReuseRecord = true

		header, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(Row{}, fmt.Errorf("%w: encabezado ilegible: %v", domain.ErrInvalidInput, err))
			return
		}
		cols := mapHeader(header)

		for line := 2; ; line++ {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Row{}, fmt.Errorf("%w: línea %d: %v", domain.ErrInvalidInput, line, err))
				return
			}
			if !yield(cols.row(record, line), nil) {
				return
			}
		}
	}
}

// XLSXRecords recorre la primera hoja de un libro .xlsx con las mismas reglas de encabezado.
func XLSXRecords(r io.Reader) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		f, err := excelize.OpenReader(r)
		if err != nil {
			yield(Row{}, fmt.Errorf("%w: libro ilegible: %v", domain.ErrInvalidInput, err))
			return
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return
		}
		rows, err := f.Rows(sheets[0])
		if err != nil {
			yield(Row{}, fmt.Errorf("%w: hoja ilegible: %v", domain.ErrInvalidInput, err))
			return
		}
		defer rows.Close()

		var cols columns
		for line := 1; rows.Next(); line++ {
			record, err := rows.Columns()
			if err != nil {
				yield(Row{}, fmt.Errorf("%w: fila %d: %v", domain.ErrInvalidInput, line, err))
				return
			}
			if line == 1 {
				cols = mapHeader(record)
				continue
			}
			if !yield(cols.row(record, line), nil) {
				return
			}
		}
		if err := rows.Error(); err != nil {
			yield(Row{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		}
	}
}
