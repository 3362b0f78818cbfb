package hwp5

import (
	"strings"

	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

// maxTableDepth limits how deeply nested tables are reconstructed.
const maxTableDepth = 16

// table rebuilds the table whose TABLE record is at index at. It returns nil
// for malformed tables and tables without rows.
func (s *decodeState) table(sec *section, at, depth int) *model.Table {
	table := s.buildTableAt(sec, at, depth)
	if s.built != nil {
		s.built[at] = table
	}
	return table
}

func (s *decodeState) buildTableAt(sec *section, at, depth int) *model.Table {
	recs := sec.records
	layout, ok := parseTableLayout(recs[at].Payload)
	if !ok {
		s.log.Debug("hwp5: skipping malformed table record", "stream", sec.stream, "record", at)
		return nil
	}
	if depth > maxTableDepth {
		s.warn(sec.stream, "table nesting deeper than %d levels skipped at record %d", maxTableDepth, at)
		return nil
	}

	cells := make([]string, 0, layout.total)
	noteLevel := -1
	for j := at + 1; j < len(recs) && len(cells) < layout.total; {
		rec := recs[j]
		if noteLevel >= 0 {
			if rec.Level > noteLevel {
				j++
				continue
			}
			noteLevel = -1
		}

		switch {
		case rec.Tag == record.TagCtrlHeader && record.CtrlIDOf(rec.Payload).IsNote():
			noteLevel = rec.Level
			j++
		case rec.Tag == record.TagListHeader:
			var text string
			text, j = s.cell(sec, j, depth)
			cells = append(cells, text)
		default:
			j++
		}
	}

	if len(cells) == 0 {
		return nil
	}
	table := buildTable(layout, cells)
	if table.IsEmpty() {
		return nil
	}
	return table
}

// cell collects the text of the cell whose LIST_HEADER is at index at. It
// returns the text and the index of the first record after the cell.
func (s *decodeState) cell(sec *section, at, depth int) (string, int) {
	recs := sec.records
	cellLevel := recs[at].Level
	var parts []string
	noteLevel := -1

	i := at + 1
	for i < len(recs) {
		rec := recs[i]
		if rec.Level < cellLevel {
			break
		}
		if (rec.Tag == record.TagListHeader || rec.Tag == record.TagTable) && rec.Level <= cellLevel {
			break
		}

		if noteLevel >= 0 {
			if rec.Level > noteLevel {
				i++
				continue
			}
			noteLevel = -1
		}

		switch {
		case rec.Tag == record.TagCtrlHeader && rec.Level > cellLevel && record.CtrlIDOf(rec.Payload).IsNote():
			noteLevel = rec.Level
		case rec.Tag == record.TagTable && rec.Level > cellLevel:
			if nested := s.table(sec, i, depth+1); nested != nil {
				parts = append(parts, nested.ToInline())
			}
			i++
			for i < len(recs) && recs[i].Level >= rec.Level {
				i++
			}
			continue
		case rec.Tag == record.TagParaText && rec.Level > cellLevel:
			parts = appendTrimmed(parts, s.cellParagraph(sec, i))
		}
		i++
	}

	return strings.Join(parts, " "), i
}

// buildTable distributes cells over rows using the declared per-row counts.
// Missing cells are empty strings and rows without cells are dropped.
func buildTable(layout tableLayout, cells []string) *model.Table {
	table := &model.Table{}
	next := 0
	for r := 0; r < layout.rows; r++ {
		count := layout.cols
		if r < len(layout.rowCells) {
			count = layout.rowCells[r]
		}
		if count == 0 {
			continue
		}
		row := make([]string, count)
		for c := range row {
			if next < len(cells) {
				row[c] = cells[next]
				next++
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// tables walks the section as text does and returns every table rebuilt
// on the way, nested ones included, in record order. Tables in note and
// memo bodies are not reached by the walk and are rebuilt afterwards with
// the same state.
func (s *decodeState) tables(sec *section) []model.Table {
	s.built = make(map[int]*model.Table)
	defer func() { s.built = nil }()

	s.text(sec)

	var found []model.Table
	for i, rec := range sec.records {
		if rec.Tag != record.TagTable {
			continue
		}
		if _, ok := s.built[i]; !ok {
			s.table(sec, i, 0)
		}
		if table := s.built[i]; table != nil {
			found = append(found, *table)
		}
	}
	return found
}
