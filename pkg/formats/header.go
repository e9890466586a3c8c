package formats

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/Faultbox/mhfc-export/pkg/binio"
)

// File magics. Every file starts with one of these 8 bytes.
const (
	MagicModel     = "MHFC MDL"
	MagicSkeleton  = "MHFC SKL"
	MagicAnimation = "MHFC ANM"
)

// UUIDWords splits a UUID into the four big-endian 32-bit words stored in
// model and skeleton headers.
func UUIDWords(id uuid.UUID) [4]uint32 {
	var words [4]uint32
	for i := range words {
		words[i] = binary.BigEndian.Uint32(id[i*4:])
	}
	return words
}

// writeHeader writes the magic, the UUID words and the artist string.
func writeHeader(w *binio.Writer, magic string, id uuid.UUID, artist string) {
	w.WriteBytes([]byte(magic))
	w.WritePacked(UUIDWords(id))
	w.WriteString(artist)
}

// writeAnimationHeader writes the animation header, which has no UUID.
func writeAnimationHeader(w *binio.Writer, artist string) {
	w.WriteBytes([]byte(MagicAnimation))
	w.WriteString(artist)
}
