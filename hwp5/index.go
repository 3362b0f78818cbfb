package hwp5

import "github.com/tsawler/hwp/record"

// maxTableCells rejects table records whose declared cell count is
// implausibly large.
const maxTableCells = 1 << 20

// tableLayout is the shape declared by a TABLE record.
type tableLayout struct {
	rows     int
	cols     int
	rowCells []int // cells per row
	total    int
}

// parseTableLayout reads the row count at offset 4, the column count at
// offset 6 and the per-row cell counts starting at offset 18. Rows without
// a stored count get cols cells.
func parseTableLayout(payload []byte) (tableLayout, bool) {
	if len(payload) < 14 {
		return tableLayout{}, false
	}
	rows := int(unitAt(payload, 4))
	cols := int(unitAt(payload, 6))

	layout := tableLayout{rows: rows, cols: cols, rowCells: make([]int, rows)}
	for r := 0; r < rows; r++ {
		off := 18 + 2*r
		if off+2 <= len(payload) {
			layout.rowCells[r] = int(unitAt(payload, off))
		} else {
			layout.rowCells[r] = cols
		}
		layout.total += layout.rowCells[r]
	}
	if layout.total > maxTableCells {
		return tableLayout{}, false
	}
	return layout, true
}

// tableRange is the inclusive span of records that make up a table.
type tableRange struct {
	start, end int
}

// findTableRanges maps the index of every top-level TABLE record to its
// range. Tables inside another table's range are not indexed.
func findTableRanges(recs record.Arena) map[int]tableRange {
	ranges := make(map[int]tableRange)
	for i := 0; i < len(recs); {
		if recs[i].Tag != record.TagTable {
			i++
			continue
		}
		layout, ok := parseTableLayout(recs[i].Payload)
		if !ok {
			i++
			continue
		}
		end := tableEnd(recs, i, layout.total)
		ranges[i] = tableRange{start: i, end: end}
		i = end + 1
	}
	return ranges
}

// tableEnd counts cell LIST_HEADER records at the level of the first cell
// until total cells are seen, then extends to the end of the last cell.
// When the records run out first, the table extends to the end of recs.
func tableEnd(recs record.Arena, at, total int) int {
	if total == 0 {
		return at
	}

	cellLevel := -1
	found := 0
	for j := at + 1; j < len(recs); j++ {
		rec := recs[j]
		if rec.Tag != record.TagListHeader {
			continue
		}
		if cellLevel < 0 {
			cellLevel = rec.Level
		} else if rec.Level != cellLevel {
			continue
		}
		found++
		if found < total {
			continue
		}

		k := j + 1
		for k < len(recs) {
			next := recs[k]
			if next.Level < cellLevel || (next.Tag == record.TagListHeader && next.Level <= cellLevel) {
				break
			}
			k++
		}
		return k - 1
	}

	return len(recs) - 1
}

// pictureIDs returns the binary data ids referenced by picture shapes, in
// record order.
func pictureIDs(recs record.Arena) []uint16 {
	var ids []uint16
	for _, rec := range recs {
		if rec.Tag != record.TagShapeComponentPicture || len(rec.Payload) < 73 {
			continue
		}
		if id, _ := rec.Uint16(71); id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
