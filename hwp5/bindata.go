package hwp5

import (
	"fmt"

	"github.com/tsawler/hwp/cfb"
	"github.com/tsawler/hwp/internal/filters"
	"github.com/tsawler/hwp/record"
)

const (
	docInfoStream = "DocInfo"
	binDataDir    = "BinData"
)

// binData is the catalogue of embedded files: the stream names under
// BinData in listing order, and the storage id to file name map declared
// in DocInfo.
type binData struct {
	names []string
	ids   map[uint16]string
}

// loadBinData builds the catalogue. Problems reading DocInfo are reported
// as warnings and leave the id map empty.
func (r *Reader) loadBinData() (*binData, []Warning) {
	bin := &binData{
		names: cfb.ListDir(r.store, binDataDir),
		ids:   make(map[uint16]string),
	}
	if !r.store.Exists(docInfoStream) {
		return bin, nil
	}

	var warnings []Warning
	data, err := cfb.ReadStream(r.store, docInfoStream)
	if err != nil {
		return bin, []Warning{{Stream: docInfoStream, Message: err.Error()}}
	}
	if r.IsCompressed() {
		var ok bool
		if data, ok = filters.InflateOrKeep(data, false); !ok {
			warnings = append(warnings, Warning{Stream: docInfoStream, Message: "decompression failed, using stored bytes"})
		}
	}

	recs, truncated := record.Decode(data)
	if truncated {
		warnings = append(warnings, Warning{Stream: docInfoStream, Message: "record stream truncated"})
	}
	for storageID, name := range binDataIDs(recs) {
		bin.ids[storageID] = name
	}
	return bin, warnings
}

// binDataIDs reads BIN_DATA records: storage id at offset 2, extension
// length at offset 4 and the UTF-16 extension from offset 6.
func binDataIDs(recs record.Arena) map[uint16]string {
	ids := make(map[uint16]string)
	for _, rec := range recs {
		if rec.Tag != record.TagBinData || len(rec.Payload) < 6 {
			continue
		}
		storageID, _ := rec.Uint16(2)
		extLen, _ := rec.Uint16(4)
		end := 6 + int(extLen)*2
		if end > len(rec.Payload) {
			continue
		}
		ext := decodeUTF16LE(rec.Payload[6:end])
		ids[storageID] = BinDataName(storageID, ext)
	}
	return ids
}

// BinDataName returns the stream name used for embedded file id with the
// given extension, e.g. "BIN0001.png".
func BinDataName(id uint16, ext string) string {
	return fmt.Sprintf("BIN%04X.%s", id, ext)
}
