package codec

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"io"

	"github.com/gogpu/canvas/color"
)

// cICP payloads: color primaries, transfer characteristics, matrix
// coefficients, full-range flag (ITU-T H.273).
var cicpValues = map[color.PredefinedSpace][4]byte{
	color.PredefinedSRGB:      {1, 13, 0, 1},
	color.PredefinedDisplayP3: {12, 13, 0, 1},
}

const (
	pngHeaderLen = 8
	// Length, type and CRC around a chunk payload.
	chunkOverhead = 12
)

type chunk struct {
	typ  string
	data []byte
}

// chunks splits a PNG stream, stopping at the first truncated chunk.
func chunks(data []byte) []chunk {
	var out []chunk
	for p := pngHeaderLen; p+chunkOverhead <= len(data); {
		n := int(binary.BigEndian.Uint32(data[p:]))
		if n < 0 || p+chunkOverhead+n > len(data) {
			break
		}
		out = append(out, chunk{typ: string(data[p+4 : p+8]), data: data[p+8 : p+8+n]})
		p += chunkOverhead + n
	}
	return out
}

func appendChunk(dst []byte, typ string, payload []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	start := len(dst)
	dst = append(dst, typ...)
	dst = append(dst, payload...)
	return binary.BigEndian.AppendUint32(dst, crc32.ChecksumIEEE(dst[start:]))
}

// EncodePNG encodes img with a cICP chunk declaring space, placed right
// after IHDR.
func EncodePNG(w io.Writer, img image.Image, space color.PredefinedSpace) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	data := buf.Bytes()
	// IHDR is always the first chunk and has a 13-byte payload.
	ihdrEnd := pngHeaderLen + chunkOverhead + 13
	v := cicpValues[space]
	out := make([]byte, 0, len(data)+chunkOverhead+len(v))
	out = append(out, data[:ihdrEnd]...)
	out = appendChunk(out, "cICP", v[:])
	out = append(out, data[ihdrEnd:]...)
	_, err := w.Write(out)
	return err
}
