package mp4probe

import (
	"fmt"
	"io"

	"github.com/Eyevinn/mp4ff/bits"
	"github.com/Eyevinn/mp4ff/mp4"
)

// matrix is a track header transformation matrix {a b u c d v x y w}.
// a, b, c and d are 16.16 fixed point.
type matrix [9]int32

var unity = matrix{0x00010000, 0, 0, 0, 0x00010000, 0, 0, 0, 0x40000000}

// quarterTurn reports whether the matrix rotates by 90 or 270 degrees,
// which swaps the display width and height.
func (m matrix) quarterTurn() bool {
	return m[0] == 0 && m[4] == 0 && m[1] != 0 && m[3] != 0
}

// trackMatrices returns the tkhd matrix of every trak in moov order.
// mp4ff decodes tkhd without its matrix, so the boxes are walked again.
func trackMatrices(r io.ReadSeeker) ([]matrix, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	var matrices []matrix
	err = walkBoxes(r, 0, size, func(hdr mp4.BoxHeader, payload, end int64) error {
		if hdr.Name != "moov" {
			return nil
		}
		return walkBoxes(r, payload, end, func(hdr mp4.BoxHeader, payload, end int64) error {
			if hdr.Name != "trak" {
				return nil
			}
			m := unity
			err := walkBoxes(r, payload, end, func(hdr mp4.BoxHeader, payload, end int64) error {
				if hdr.Name != "tkhd" {
					return nil
				}
				var err error
				m, err = readMatrix(r, payload, end)
				return err
			})
			matrices = append(matrices, m)
			return err
		})
	})
	return matrices, err
}

// walkBoxes calls visit for each box in [start, end) with the offsets of
// its payload and of its end.
func walkBoxes(r io.ReadSeeker, start, end int64, visit func(hdr mp4.BoxHeader, payload, end int64) error) error {
	for pos := start; pos < end; {
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return err
		}
		hdr, err := mp4.DecodeHeader(r)
		if err != nil {
			return fmt.Errorf("box header at %d: %w", pos, err)
		}
		boxEnd := pos + int64(hdr.Size)
		if boxEnd > end {
			return fmt.Errorf("box %s at %d overruns its parent", hdr.Name, pos)
		}
		if err := visit(hdr, pos+int64(hdr.Hdrlen), boxEnd); err != nil {
			return err
		}
		pos = boxEnd
	}
	return nil
}

func readMatrix(r io.ReadSeeker, payload, end int64) (matrix, error) {
	if _, err := r.Seek(payload, io.SeekStart); err != nil {
		return unity, err
	}
	data := make([]byte, end-payload)
	if _, err := io.ReadFull(r, data); err != nil {
		return unity, fmt.Errorf("read tkhd: %w", err)
	}

	// version+flags, times, track ID, reserved, duration, then 16 bytes of
	// reserved/layer/group/volume before the matrix
	offset := 40
	if len(data) > 0 && data[0] == 1 {
		offset = 48
	}
	if len(data) < offset+36 {
		return unity, fmt.Errorf("tkhd too short: %d bytes", len(data))
	}

	sr := bits.NewFixedSliceReader(data)
	sr.SkipBytes(offset)
	var m matrix
	for i := range m {
		m[i] = sr.ReadInt32()
	}
	return m, sr.AccError()
}
