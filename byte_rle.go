package orc

// byteRleDecoder decodes the ORC byte run-length encoding: a control byte
// below 0x80 introduces a run of control+3 copies of the following byte,
// and a control byte of 0x80 or above introduces 256-control literal bytes.
type byteRleDecoder struct {
	reader    streamByteReader
	remaining int
	literal   bool
	value     byte
}

func (d *byteRleDecoder) readHeader() error {
	control, err := d.reader.readByte()
	if err != nil {
		return err
	}
	if control < 0x80 {
		d.literal = false
		d.remaining = int(control) + 3
		d.value, err = d.reader.readByte()
		return err
	}
	d.literal = true
	d.remaining = 256 - int(control)
	return nil
}

func (d *byteRleDecoder) nextValue() (byte, error) {
	if d.remaining == 0 {
		if err := d.readHeader(); err != nil {
			return 0, err
		}
	}
	d.remaining--
	if !d.literal {
		return d.value, nil
	}
	return d.reader.readByte()
}

func (d *byteRleDecoder) Next(out []byte, notNull []byte) error {
	for i := range out {
		if notNull != nil && notNull[i] == 0 {
			continue
		}
		v, err := d.nextValue()
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

func (d *byteRleDecoder) Skip(n int) error {
	for n > 0 {
		if d.remaining == 0 {
			if err := d.readHeader(); err != nil {
				return err
			}
		}
		step := n
		if step > d.remaining {
			step = d.remaining
		}
		d.remaining -= step
		n -= step
		if d.literal {
			if err := d.reader.skipBytes(int64(step)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *byteRleDecoder) Seek(positions *PositionProvider) error {
	if err := d.reader.stream.Seek(positions); err != nil {
		return err
	}
	d.reader.reset()
	d.remaining = 0
	d.literal = false
	return d.Skip(int(positions.Next()))
}

// booleanRleDecoder unpacks bits from a byte RLE stream, most significant
// bit first. Partial bytes at a Next boundary are carried to the next call.
type booleanRleDecoder struct {
	rle           byteRleDecoder
	current       byte
	bitsRemaining int
}

func (d *booleanRleDecoder) nextBit() (byte, error) {
	if d.bitsRemaining == 0 {
		v, err := d.rle.nextValue()
		if err != nil {
			return 0, err
		}
		d.current = v
		d.bitsRemaining = 8
	}
	d.bitsRemaining--
	return (d.current >> uint(d.bitsRemaining)) & 1, nil
}

func (d *booleanRleDecoder) Next(out []byte, notNull []byte) error {
	for i := range out {
		if notNull != nil && notNull[i] == 0 {
			continue
		}
		bit, err := d.nextBit()
		if err != nil {
			return err
		}
		out[i] = bit
	}
	return nil
}

func (d *booleanRleDecoder) Skip(n int) error {
	for n > 0 && d.bitsRemaining > 0 {
		d.bitsRemaining--
		n--
	}
	if n == 0 {
		return nil
	}
	if err := d.rle.Skip(n / 8); err != nil {
		return err
	}
	for i := 0; i < n%8; i++ {
		if _, err := d.nextBit(); err != nil {
			return err
		}
	}
	return nil
}

func (d *booleanRleDecoder) Seek(positions *PositionProvider) error {
	if err := d.rle.Seek(positions); err != nil {
		return err
	}
	d.bitsRemaining = 0
	d.current = 0
	return d.Skip(int(positions.Next()))
}
