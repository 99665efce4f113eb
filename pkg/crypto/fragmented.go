package crypto

import "github.com/joseinweb/rdkcryptoapi/pkg/types"

// Window describes one region of a buffer a fragmented cipher session
// should transform: the region starts at Offset, covers Size bytes, then
// repeats every Period bytes until the buffer is exhausted.
type Window struct {
	Offset int
	Size   int
	Period int
}

// ApplyFragmented runs transform over every byte range matched by windows,
// leaving the gaps between windows untouched, and returns a new buffer of
// the same length as buf. This is the primitive fragmented (sub-sample)
// cipher mode sessions in pkg/processor are built from.
func ApplyFragmented(buf []byte, windows []Window, transform func([]byte) ([]byte, error)) ([]byte, error) {
	out := make([]byte, len(buf))
	copy(out, buf)
	for _, w := range windows {
		if w.Size <= 0 || w.Period <= 0 {
			return nil, types.ErrInvalidParameters
		}
		for start := w.Offset; start < len(buf); start += w.Period {
			end := start + w.Size
			if end > len(buf) {
				end = len(buf)
			}
			if start >= end {
				break
			}
			transformed, err := transform(buf[start:end])
			if err != nil {
				return nil, err
			}
			if len(transformed) != end-start {
				return nil, types.ErrInvalidInputSize
			}
			copy(out[start:end], transformed)
		}
	}
	return out, nil
}
