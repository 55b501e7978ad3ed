package segment

import "github.com/MaiRat/WinDOS-sub002/errs"

// FileImage is the interface the SegmentManager consumes to reload an
// evicted segment's bytes from the bound NE file image. It is the one
// boundary between the SegmentManager and the external NE binary parser:
// the parser owns decoding segment/resource/name tables, this package only
// ever asks for a bounds-checked byte range (spec §6).
type FileImage interface {
	// ReadAt returns length bytes starting at off, or an *errs.Error with
	// Kind errs.IO if the range is out of bounds.
	ReadAt(off, length uint32) ([]byte, error)
}

// BytesImage is a FileImage backed by an in-memory byte slice, the shape
// tests and simple hosted callers bind most often.
type BytesImage []byte

// ReadAt implements FileImage.
func (b BytesImage) ReadAt(off, length uint32) ([]byte, error) {
	const op = "segment.file_image.read_at"
	end := uint64(off) + uint64(length)
	if end > uint64(len(b)) {
		return nil, errs.New(op, errs.IO)
	}
	out := make([]byte, length)
	copy(out, b[off:end])
	return out, nil
}
