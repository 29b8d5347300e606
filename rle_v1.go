package orc

// intRleV1Decoder decodes the first version of the integer run-length
// encoding: a control byte below 0x80 introduces a run of control+3 values
// starting at a varint base and stepping by a signed single-byte delta; a
// control byte of 0x80 or above introduces 256-control literal varints.
// Signed streams zig-zag encode each varint.
type intRleV1Decoder struct {
	reader    streamByteReader
	signed    bool
	metrics   *ReaderMetrics
	remaining int
	literal   bool
	value     int64
	delta     int64
}

func (d *intRleV1Decoder) readValue() (int64, error) {
	if d.signed {
		return d.reader.readSignedVarint()
	}
	u, err := d.reader.readVarint()
	return int64(u), err
}

func (d *intRleV1Decoder) readHeader() error {
	control, err := d.reader.readByte()
	if err != nil {
		return err
	}
	if control < 0x80 {
		d.literal = false
		d.remaining = int(control) + 3
		deltaByte, err := d.reader.readByte()
		if err != nil {
			return err
		}
		d.delta = int64(int8(deltaByte))
		d.value, err = d.readValue()
		return err
	}
	d.literal = true
	d.remaining = 256 - int(control)
	return nil
}

func (d *intRleV1Decoder) nextValue() (int64, error) {
	if d.remaining == 0 {
		if err := d.readHeader(); err != nil {
			return 0, err
		}
	}
	d.remaining--
	if d.literal {
		return d.readValue()
	}
	v := d.value
	d.value += d.delta
	return v, nil
}

func (d *intRleV1Decoder) Next(out []int64, notNull []byte) error {
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

func (d *intRleV1Decoder) Skip(n int) error {
	for ; n > 0; n-- {
		if _, err := d.nextValue(); err != nil {
			return err
		}
	}
	return nil
}

func (d *intRleV1Decoder) Seek(positions *PositionProvider) error {
	if err := d.reader.stream.Seek(positions); err != nil {
		return err
	}
	d.reader.reset()
	d.remaining = 0
	d.literal = false
	return d.Skip(int(positions.Next()))
}
