package hwp5

import (
	"strings"

	"github.com/tsawler/hwp/record"
)

// section is one decoded BodyText stream with the indexes derived from it.
// It is read-only once built.
type section struct {
	index    int
	stream   string
	records  record.Arena
	tables   map[int]tableRange
	pictures []uint16
	anchors  []string

	// notes holds the CTRL_HEADER indexes of footnotes and endnotes by id,
	// memoLists the MEMO_LIST indexes, both in record order.
	notes     map[record.CtrlID][]int
	memoLists []int
}

func newSection(index int, stream string, recs record.Arena) *section {
	sec := &section{
		index:    index,
		stream:   stream,
		records:  recs,
		tables:   findTableRanges(recs),
		pictures: pictureIDs(recs),
		notes:    make(map[record.CtrlID][]int),
	}
	for i, rec := range recs {
		switch rec.Tag {
		case record.TagCtrlHeader:
			if id := record.CtrlIDOf(rec.Payload); id.IsNote() {
				sec.notes[id] = append(sec.notes[id], i)
			}
		case record.TagMemoList:
			sec.memoLists = append(sec.memoLists, i)
		case record.TagParaText:
			sec.anchors = append(sec.anchors, collectAnchors(rec.Payload)...)
		}
	}
	return sec
}

// text walks the section and returns its paragraphs joined by the line
// separator. Tables are rendered in place; note and memo subtrees are left
// out of the body.
func (s *decodeState) text(sec *section) string {
	recs := sec.records
	var paragraphs []string
	memoLevel, noteLevel := -1, -1

	for i := 0; i < len(recs); {
		rec := recs[i]
		s.visitHyperlink(sec, i)

		if rec.Tag == record.TagMemoList {
			memoLevel = rec.Level
			i++
			continue
		}
		if memoLevel >= 0 {
			if rec.Level >= memoLevel {
				i++
				continue
			}
			memoLevel = -1
		}
		if noteLevel >= 0 {
			if rec.Level > noteLevel {
				i++
				continue
			}
			noteLevel = -1
		}

		if rng, ok := sec.tables[i]; ok {
			for k := i + 1; k <= rng.end; k++ {
				s.visitHyperlink(sec, k)
			}
			if table := s.table(sec, i, 0); table != nil {
				paragraphs = append(paragraphs, "", table.Format(s.opts.TableStyle, s.opts.TableDelimiter), "")
			}
			i = rng.end + 1
			continue
		}

		switch rec.Tag {
		case record.TagCtrlHeader:
			if record.CtrlIDOf(rec.Payload).IsNote() {
				noteLevel = rec.Level
			}
		case record.TagParaText:
			text := s.paragraph(sec, i)
			if strings.TrimSpace(text) != "" || s.opts.IncludeEmptyParagraphs {
				paragraphs = append(paragraphs, text)
			}
		}
		i++
	}

	return strings.Join(paragraphs, s.opts.LineSeparator)
}
