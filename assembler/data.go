package assembler

import "encoding/binary"

// encodeData lays out the data segment in directive order with no
// padding between items. Halfwords and words are stored big-endian.
func encodeData(seg *DataSegment) []byte {
	out := make([]byte, 0, seg.Size)
	for _, item := range seg.Items {
		switch item.Directive {
		case "byte":
			for _, v := range item.Values {
				out = append(out, byte(v))
			}
		case "half":
			for _, v := range item.Values {
				out = binary.BigEndian.AppendUint16(out, uint16(v))
			}
		case "word":
			for _, v := range item.Values {
				out = binary.BigEndian.AppendUint32(out, uint32(v))
			}
		case "ascii":
			out = append(out, item.Text...)
		case "space":
			out = append(out, make([]byte, item.Size)...)
		}
	}
	return out
}
