package catalog

import "iter"

// Stats conteos de la etapa de normalización.
type Stats struct {
	Parsed  int // registros leídos sin contar el encabezado
	Skipped int // vacíos o incompletos
	Unique  int // SKU distintos tras deduplicar
}

// Dedupe consume rows, descarta las incompletas y deduplica por SKU: gana la última
// aparición, conservando la posición de la primera.
func Dedupe(rows iter.Seq2[Row, error]) ([]Row, Stats, error) {
	var (
		stats Stats
		out   []Row
		index = make(map[string]int)
	)
	for row, err := range rows {
		if err != nil {
			return nil, stats, err
		}
		stats.Parsed++
		if !row.Complete() {
			stats.Skipped++
			continue
		}
		if i, seen := index[row.SKU]; seen {
			out[i] = row
			continue
		}
		index[row.SKU] = len(out)
		out = append(out, row)
	}
	stats.Unique = len(out)
	return out, stats, nil
}
