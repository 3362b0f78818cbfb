package hwp5

import (
	"github.com/tsawler/hwp/cfb"
	"github.com/tsawler/hwp/internal/filters"
	"github.com/tsawler/hwp/model"
)

// Images returns the embedded pictures in BinData listing order. Streams are
// raw-deflate decoded when possible; streams whose format is not recognized
// are skipped.
func (r *Reader) Images() ([]model.Image, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	bin := r.binData()
	log := r.logger()
	var warnings []Warning

	var images []model.Image
	for idx, name := range bin.names {
		stream := binDataDir + "/" + name
		data, err := cfb.ReadStream(r.store, stream)
		if err != nil {
			warnings = append(warnings, Warning{Stream: stream, Message: err.Error()})
			continue
		}
		if decoded, ok := filters.InflateOrKeep(data, true); ok {
			data = decoded
		} else {
			log.Debug("hwp5: binary data not deflated, using stored bytes", "stream", stream)
		}

		img, ok := model.NewImage(name, data, idx)
		if !ok {
			log.Debug("hwp5: skipping binary data with unknown format", "stream", stream, "size", len(data))
			continue
		}
		images = append(images, img)
	}

	r.setWarnings(warnings)
	return images, nil
}
