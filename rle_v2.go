package orc

// intRleV2Decoder decodes the second version of the integer run-length
// encoding. The two high bits of the first byte of each run select one of
// four sub-encodings: short repeat, direct, patched base, and delta. Runs
// hold at most 512 values, so each run is decoded into a buffer and served
// from there across Next calls.
type intRleV2Decoder struct {
	reader   streamByteReader
	signed   bool
	metrics  *ReaderMetrics
	literals [512]int64
	count    int
	used     int

	// bit unpacking cursor
	bitsLeft int
	bitBuf   uint64
}

const (
	rleV2ShortRepeat = 0
	rleV2Direct      = 1
	rleV2PatchedBase = 2
	rleV2Delta       = 3
)

// decodeBitWidth expands the 5-bit width code used by the direct, patched
// base, and delta sub-encodings.
func decodeBitWidth(code int) int {
	switch {
	case code < 24:
		return code + 1
	case code == 24:
		return 26
	case code == 25:
		return 28
	case code == 26:
		return 30
	case code == 27:
		return 32
	default:
		return 40 + (code-28)*8
	}
}

// closestFixedBits rounds a bit count up to the nearest width the encoding
// can represent.
func closestFixedBits(n int) int {
	switch {
	case n == 0:
		return 1
	case n <= 24:
		return n
	case n <= 26:
		return 26
	case n <= 28:
		return 28
	case n <= 30:
		return 30
	case n <= 32:
		return 32
	case n <= 40:
		return 40
	case n <= 48:
		return 48
	case n <= 56:
		return 56
	default:
		return 64
	}
}

func (d *intRleV2Decoder) resetBits() {
	d.bitsLeft = 0
	d.bitBuf = 0
}

// readBits reads width bits, most significant bit first.
func (d *intRleV2Decoder) readBits(width int) (uint64, error) {
	for d.bitsLeft < width {
		b, err := d.reader.readByte()
		if err != nil {
			return 0, err
		}
		d.bitBuf = d.bitBuf<<8 | uint64(b)
		d.bitsLeft += 8
	}
	d.bitsLeft -= width
	v := d.bitBuf >> uint(d.bitsLeft)
	if width < 64 {
		v &= (1 << uint(width)) - 1
	}
	return v, nil
}

func (d *intRleV2Decoder) readBigEndian(n int) (uint64, error) {
	var v uint64
	for i := 0; i < n; i++ {
		b, err := d.reader.readByte()
		if err != nil {
			return 0, err
		}
		v = v<<8 | uint64(b)
	}
	return v, nil
}

func (d *intRleV2Decoder) readRun() error {
	first, err := d.reader.readByte()
	if err != nil {
		return err
	}
	d.used = 0
	switch first >> 6 {
	case rleV2ShortRepeat:
		return d.readShortRepeat(first)
	case rleV2Direct:
		return d.readDirect(first)
	case rleV2PatchedBase:
		return d.readPatchedBase(first)
	default:
		return d.readDelta(first)
	}
}

func (d *intRleV2Decoder) readShortRepeat(first byte) error {
	width := int(first>>3)&0x7 + 1
	d.count = int(first&0x7) + 3
	v, err := d.readBigEndian(width)
	if err != nil {
		return err
	}
	value := int64(v)
	if d.signed {
		value = unZigZag(v)
	}
	for i := 0; i < d.count; i++ {
		d.literals[i] = value
	}
	return nil
}

func (d *intRleV2Decoder) readRunLength(first byte) (int, error) {
	second, err := d.reader.readByte()
	if err != nil {
		return 0, err
	}
	return (int(first&1)<<8 | int(second)) + 1, nil
}

func (d *intRleV2Decoder) readDirect(first byte) error {
	width := decodeBitWidth(int(first>>1) & 0x1f)
	length, err := d.readRunLength(first)
	if err != nil {
		return err
	}
	d.count = length
	d.resetBits()
	for i := 0; i < length; i++ {
		v, err := d.readBits(width)
		if err != nil {
			return err
		}
		if d.signed {
			d.literals[i] = unZigZag(v)
		} else {
			d.literals[i] = int64(v)
		}
	}
	return nil
}

func (d *intRleV2Decoder) readPatchedBase(first byte) error {
	width := decodeBitWidth(int(first>>1) & 0x1f)
	length, err := d.readRunLength(first)
	if err != nil {
		return err
	}
	third, err := d.reader.readByte()
	if err != nil {
		return err
	}
	baseWidth := int(third>>5)&0x7 + 1
	patchWidth := decodeBitWidth(int(third) & 0x1f)
	fourth, err := d.reader.readByte()
	if err != nil {
		return err
	}
	patchGapWidth := int(fourth>>5)&0x7 + 1
	patchLength := int(fourth) & 0x1f

	// base is stored sign-magnitude, the sign in the top bit
	rawBase, err := d.readBigEndian(baseWidth)
	if err != nil {
		return err
	}
	signMask := uint64(1) << uint(baseWidth*8-1)
	base := int64(rawBase)
	if rawBase&signMask != 0 {
		base = -int64(rawBase &^ signMask)
	}

	d.count = length
	d.resetBits()
	for i := 0; i < length; i++ {
		v, err := d.readBits(width)
		if err != nil {
			return err
		}
		d.literals[i] = int64(v)
	}

	patchEntryWidth := closestFixedBits(patchGapWidth + patchWidth)
	d.resetBits()
	gap := 0
	for i := 0; i < patchLength; i++ {
		entry, err := d.readBits(patchEntryWidth)
		if err != nil {
			return err
		}
		gap += int(entry >> uint(patchWidth))
		patch := entry & (1<<uint(patchWidth) - 1)
		if gap >= length {
			return parseErrorf("patch gap out of range in stream %s", d.reader.stream.Name())
		}
		d.literals[gap] |= int64(patch << uint(width))
	}

	for i := 0; i < length; i++ {
		d.literals[i] += base
	}
	return nil
}

func (d *intRleV2Decoder) readDelta(first byte) error {
	widthCode := int(first>>1) & 0x1f
	width := 0
	if widthCode != 0 {
		width = decodeBitWidth(widthCode)
	}
	length, err := d.readRunLength(first)
	if err != nil {
		return err
	}

	var base int64
	if d.signed {
		base, err = d.reader.readSignedVarint()
	} else {
		var u uint64
		u, err = d.reader.readVarint()
		base = int64(u)
	}
	if err != nil {
		return err
	}
	deltaBase, err := d.reader.readSignedVarint()
	if err != nil {
		return err
	}

	d.count = length
	d.literals[0] = base
	if length == 1 {
		return nil
	}
	d.literals[1] = base + deltaBase
	if width == 0 {
		for i := 2; i < length; i++ {
			d.literals[i] = d.literals[i-1] + deltaBase
		}
		return nil
	}
	d.resetBits()
	for i := 2; i < length; i++ {
		delta, err := d.readBits(width)
		if err != nil {
			return err
		}
		if deltaBase < 0 {
			d.literals[i] = d.literals[i-1] - int64(delta)
		} else {
			d.literals[i] = d.literals[i-1] + int64(delta)
		}
	}
	return nil
}

func (d *intRleV2Decoder) Next(out []int64, notNull []byte) error {
	for i := range out {
		if notNull != nil && notNull[i] == 0 {
			continue
		}
		if d.used == d.count {
			if err := d.readRun(); err != nil {
				return err
			}
		}
		out[i] = d.literals[d.used]
		d.used++
	}
	return nil
}

func (d *intRleV2Decoder) Skip(n int) error {
	for n > 0 {
		if d.used == d.count {
			if err := d.readRun(); err != nil {
				return err
			}
		}
		step := n
		if step > d.count-d.used {
			step = d.count - d.used
		}
		d.used += step
		n -= step
	}
	return nil
}

func (d *intRleV2Decoder) Seek(positions *PositionProvider) error {
	if err := d.reader.stream.Seek(positions); err != nil {
		return err
	}
	d.reader.reset()
	d.resetBits()
	d.count = 0
	d.used = 0
	return d.Skip(int(positions.Next()))
}
