package jpegcoef

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Serialize re-encodes a View into a baseline JPEG byte stream. The cover's
// quantization tables and component/sampling layout are copied verbatim
// ("critical parameters"); the Huffman tables are always the standard
// Annex K tables rather than whatever the cover originally carried, the
// same choice jpeg_set_defaults makes after jpeg_copy_critical_parameters
// (see DESIGN.md). Grounded on dlecorfec/progjpeg writer.go's
// writeMarkerHeader/writeDQT/writeSOF/writeDHT/writeBlock shape.
func (v *View) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8}) // SOI

	if err := writeDQT(&buf, v.Quant); err != nil {
		return nil, encodeErr("dqt", err)
	}
	if err := writeSOF(&buf, v); err != nil {
		return nil, encodeErr("sof", err)
	}
	writeDHT(&buf, v.Grayscale)
	if v.RestartInterval > 0 {
		writeDRI(&buf, v.RestartInterval)
	}
	if err := writeSOSAndScan(&buf, v); err != nil {
		return nil, encodeErr("scan", err)
	}

	buf.Write([]byte{0xFF, 0xD9}) // EOI
	return buf.Bytes(), nil
}

func writeMarkerHeader(buf *bytes.Buffer, marker byte, length int) {
	buf.Write([]byte{0xFF, marker})
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(length))
	buf.Write(l[:])
}

// needs16BitPrecision reports whether q holds a value too large for the
// 8-bit (Pq=0) DQT encoding, the case a 12-bit-source cover's tables can hit.
func needs16BitPrecision(q QuantTable) bool {
	for _, v := range q {
		if v > 0xFF {
			return true
		}
	}
	return false
}

func writeDQT(buf *bytes.Buffer, tables []QuantTable) error {
	if len(tables) == 0 {
		return fmt.Errorf("no quantization tables to write")
	}
	length := 2
	for _, q := range tables {
		if needs16BitPrecision(q) {
			length += 1 + 128
		} else {
			length += 1 + 64
		}
	}
	writeMarkerHeader(buf, markerDQT, length)
	for id, q := range tables {
		if needs16BitPrecision(q) {
			buf.WriteByte(1<<4 | byte(id))
			var b [2]byte
			for _, coeff := range q {
				binary.BigEndian.PutUint16(b[:], coeff)
				buf.Write(b[:])
			}
			continue
		}
		buf.WriteByte(byte(id))
		for _, coeff := range q {
			buf.WriteByte(byte(coeff))
		}
	}
	return nil
}

func writeSOF(buf *bytes.Buffer, v *View) error {
	nComp := len(v.Components)
	length := 2 + 1 + 2 + 2 + 1 + nComp*3
	writeMarkerHeader(buf, markerSOF0, length)
	buf.WriteByte(8) // sample precision
	var wh [4]byte
	binary.BigEndian.PutUint16(wh[0:2], uint16(v.Height))
	binary.BigEndian.PutUint16(wh[2:4], uint16(v.Width))
	buf.Write(wh[:])
	buf.WriteByte(byte(nComp))
	for _, c := range v.Components {
		buf.WriteByte(c.ID)
		buf.WriteByte(byte(c.H<<4 | c.V))
		buf.WriteByte(byte(c.QuantTable))
	}
	return nil
}

// huffmanTableID is the DHT/SOS table id we always write: 0 for luma, 1 for
// chroma, matching the standard two-DC/two-AC-table convention.
func huffmanTableID(compIndex int) byte {
	if compIndex == 0 {
		return 0
	}
	return 1
}

func writeDHT(buf *bytes.Buffer, grayscale bool) {
	specs := []struct {
		class, id byte
		spec      huffmanSpec
	}{
		{0, 0, theHuffmanSpec[huffLumaDC]},
		{1, 0, theHuffmanSpec[huffLumaAC]},
	}
	if !grayscale {
		specs = append(specs,
			struct {
				class, id byte
				spec      huffmanSpec
			}{0, 1, theHuffmanSpec[huffChromaDC]},
			struct {
				class, id byte
				spec      huffmanSpec
			}{1, 1, theHuffmanSpec[huffChromaAC]},
		)
	}
	length := 2
	for _, s := range specs {
		length += 1 + 16 + len(s.spec.value)
	}
	writeMarkerHeader(buf, markerDHT, length)
	for _, s := range specs {
		buf.WriteByte(s.class<<4 | s.id)
		buf.Write(s.spec.count[:])
		buf.Write(s.spec.value)
	}
}

func writeDRI(buf *bytes.Buffer, interval int) {
	writeMarkerHeader(buf, markerDRI, 4)
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(interval))
	buf.Write(b[:])
}

func writeSOSAndScan(buf *bytes.Buffer, v *View) error {
	nComp := len(v.Components)
	length := 2 + 1 + nComp*2 + 3
	writeMarkerHeader(buf, markerSOS, length)
	buf.WriteByte(byte(nComp))
	for ci, c := range v.Components {
		id := huffmanTableID(ci)
		buf.WriteByte(c.ID)
		buf.WriteByte(id<<4 | id)
	}
	buf.Write([]byte{0, 63, 0}) // Ss, Se, AhAl (ignored for baseline sequential)

	mcuWide := v.Components[0].BlocksWide / v.Components[0].H
	mcuHigh := v.Components[0].BlocksHigh / v.Components[0].V
	totalMCUs := mcuWide * mcuHigh

	bw := newBitWriter()
	prevDC := make([]int32, nComp)
	restartCounter := v.RestartInterval
	restartIdx := 0

	for mcu := 0; mcu < totalMCUs; mcu++ {
		my, mx := mcu/mcuWide, mcu%mcuWide
		for ci := range v.Components {
			c := &v.Components[ci]
			var dcIdx, acIdx huffIndex
			if huffmanTableID(ci) == 1 {
				dcIdx, acIdx = huffChromaDC, huffChromaAC
			} else {
				dcIdx, acIdx = huffLumaDC, huffLumaAC
			}
			for by := 0; by < c.V; by++ {
				for bx := 0; bx < c.H; bx++ {
					blockY := my*c.V + by
					blockX := mx*c.H + bx
					blk := &c.Blocks[blockY][blockX]
					prevDC[ci] = writeBlock(bw, blk, dcIdx, acIdx, prevDC[ci])
				}
			}
		}
		if v.RestartInterval > 0 {
			restartCounter--
			if restartCounter == 0 && mcu != totalMCUs-1 {
				buf.Write(bw.flush())
				bw = newBitWriter()
				buf.Write([]byte{0xFF, byte(markerRST0 + restartIdx%8)})
				restartIdx++
				for i := range prevDC {
					prevDC[i] = 0
				}
				restartCounter = v.RestartInterval
			}
		}
	}
	buf.Write(bw.flush())
	return nil
}

// writeBlock entropy-encodes one already-quantized block's DC (as a delta
// from prevDC) and AC run-length-coded coefficients, grounded on writer.go's
// writeBlock but without its fdct/div steps: the coefficients here are
// final and are emitted as-is.
func writeBlock(bw *bitWriter, blk *Block, dc, ac huffIndex, prevDC int32) int32 {
	dcVal := int32(blk[0])
	bw.emitHuffRLE(dc, 0, dcVal-prevDC)

	runLength := int32(0)
	for zig := 1; zig < 64; zig++ {
		v := int32(blk[unzig[zig]])
		if v == 0 {
			runLength++
			continue
		}
		for runLength > 15 {
			bw.emitHuff(ac, 0xf0) // ZRL
			runLength -= 16
		}
		bw.emitHuffRLE(ac, runLength, v)
		runLength = 0
	}
	if runLength > 0 {
		bw.emitHuff(ac, 0x00) // EOB
	}
	return dcVal
}
