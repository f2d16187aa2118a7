package jpegcoef

// unzig maps a zig-zag scan index to its natural (row-major) block index,
// the same table used by libjpeg and by image/jpeg forks such as
// dlecorfec/progjpeg's scan.go.
var unzig = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// huffIndex selects one of the four standard Annex K tables always used on
// re-encode, matching what jpeg_set_defaults (and image/jpeg's writer)
// produce regardless of the cover's original tables.
type huffIndex int

const (
	huffLumaDC huffIndex = iota
	huffLumaAC
	huffChromaDC
	huffChromaAC
	numHuffIndex
)

// huffmanSpec is the code-length-count / value-ordering pair that ITU-T
// T.81 Annex K specifies for the standard tables.
type huffmanSpec struct {
	count [16]byte
	value []byte
}

var theHuffmanSpec = [numHuffIndex]huffmanSpec{
	// Luminance DC.
	huffLumaDC: {
		count: [16]byte{0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		value: []byte{
			0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11,
		},
	},
	// Luminance AC.
	huffLumaAC: {
		count: [16]byte{0, 2, 1, 3, 3, 2, 4, 3, 5, 5, 4, 4, 0, 0, 1, 0x7d},
		value: []byte{
			0x01, 0x02, 0x03, 0x00, 0x04, 0x11, 0x05, 0x12,
			0x21, 0x31, 0x41, 0x06, 0x13, 0x51, 0x61, 0x07,
			0x22, 0x71, 0x14, 0x32, 0x81, 0x91, 0xa1, 0x08,
			0x23, 0x42, 0xb1, 0xc1, 0x15, 0x52, 0xd1, 0xf0,
			0x24, 0x33, 0x62, 0x72, 0x82, 0x09, 0x0a, 0x16,
			0x17, 0x18, 0x19, 0x1a, 0x25, 0x26, 0x27, 0x28,
			0x29, 0x2a, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39,
			0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48, 0x49,
			0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58, 0x59,
			0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69,
			0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78, 0x79,
			0x7a, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89,
			0x8a, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x98,
			0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7,
			0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4, 0xb5, 0xb6,
			0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3, 0xc4, 0xc5,
			0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2, 0xd3, 0xd4,
			0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda, 0xe1, 0xe2,
			0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9, 0xea,
			0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		},
	},
	// Chrominance DC.
	huffChromaDC: {
		count: [16]byte{0, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		value: []byte{
			0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11,
		},
	},
	// Chrominance AC.
	huffChromaAC: {
		count: [16]byte{0, 2, 1, 2, 4, 4, 3, 4, 7, 5, 4, 4, 0, 1, 2, 0x77},
		value: []byte{
			0x00, 0x01, 0x02, 0x03, 0x11, 0x04, 0x05, 0x21,
			0x31, 0x06, 0x12, 0x41, 0x51, 0x07, 0x61, 0x71,
			0x13, 0x22, 0x32, 0x81, 0x08, 0x14, 0x42, 0x91,
			0xa1, 0xb1, 0xc1, 0x09, 0x23, 0x33, 0x52, 0xf0,
			0x15, 0x62, 0x72, 0xd1, 0x0a, 0x16, 0x24, 0x34,
			0xe1, 0x25, 0xf1, 0x17, 0x18, 0x19, 0x1a, 0x26,
			0x27, 0x28, 0x29, 0x2a, 0x35, 0x36, 0x37, 0x38,
			0x39, 0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48,
			0x49, 0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58,
			0x59, 0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68,
			0x69, 0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78,
			0x79, 0x7a, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
			0x88, 0x89, 0x8a, 0x92, 0x93, 0x94, 0x95, 0x96,
			0x97, 0x98, 0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5,
			0xa6, 0xa7, 0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4,
			0xb5, 0xb6, 0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3,
			0xc4, 0xc5, 0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2,
			0xd3, 0xd4, 0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda,
			0xe2, 0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9,
			0xea, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		},
	},
}

// huffmanLUT packs, for each possible 8-bit symbol value, the code length
// in the high byte and the code itself in the low bits, built once from a
// huffmanSpec via init. A zero entry means "no code of this symbol".
type huffmanLUT []uint32

func (h *huffmanLUT) init(s huffmanSpec) {
	maxVal := byte(0)
	for _, v := range s.value {
		if v > maxVal {
			maxVal = v
		}
	}
	*h = make([]uint32, int(maxVal)+1)
	code, k := uint32(0), 0
	for i := 0; i < 16; i++ {
		nBits := uint32(i+1) << 24
		for j := 0; j < int(s.count[i]); j++ {
			sym := s.value[k]
			(*h)[sym] = nBits | code
			code++
			k++
		}
		code <<= 1
	}
}

var huffmanLUTs [numHuffIndex]huffmanLUT

func init() {
	for i, spec := range theHuffmanSpec {
		huffmanLUTs[i].init(spec)
	}
}

// huffmanDecodeTable is the canonical min-code/max-code/val-ptr form used
// for Huffman decoding, built from each DHT segment the decoder reads: the
// cover's own tables, or, for Serialize output, the standard tables the
// encoder's LUTs are built from.
type huffmanDecodeTable struct {
	minCode [17]int
	maxCode [17]int
	valPtr  [17]int
	values  []byte
}

func buildDecodeTable(s huffmanSpec) huffmanDecodeTable {
	var t huffmanDecodeTable
	t.values = s.value
	code, k := 0, 0
	for length := 1; length <= 16; length++ {
		n := int(s.count[length-1])
		if n == 0 {
			t.minCode[length] = -1
			t.maxCode[length] = -1
			code <<= 1
			continue
		}
		t.valPtr[length] = k
		t.minCode[length] = code
		code += n
		k += n
		t.maxCode[length] = code - 1
		code <<= 1
	}
	return t
}

// bitCount maps a signed magnitude's absolute value to the number of bits
// needed to represent it (the JPEG "category"); index 0 gives category 0.
var bitCount = func() [2048]byte {
	var t [2048]byte
	for i := range t {
		n, bits := i, byte(0)
		for n > 0 {
			bits++
			n >>= 1
		}
		t[i] = bits
	}
	return t
}()
