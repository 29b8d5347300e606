package orc

import "testing"

func TestInt128FromInt64(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{9223372036854775807, "9223372036854775807"},
		{-9223372036854775808, "-9223372036854775808"},
	}
	for _, test := range tests {
		if got := Int128FromInt64(test.in).String(); got != test.want {
			t.Errorf("Int128FromInt64(%d) = %s, want %s", test.in, got, test.want)
		}
	}
}

func TestInt128UnZigZag(t *testing.T) {
	tests := []struct {
		encoded uint64
		want    string
	}{
		{0, "0"},
		{1, "-1"},
		{2, "1"},
		{3, "-2"},
		{4, "2"},
	}
	for _, test := range tests {
		var v Int128
		v.orShifted(test.encoded, 0)
		v.unZigZag()
		if got := v.String(); got != test.want {
			t.Errorf("unZigZag(%d) = %s, want %s", test.encoded, got, test.want)
		}
	}
}

func TestInt128OrShiftedAcrossHalves(t *testing.T) {
	var v Int128
	v.orShifted(0x7f, 60)
	// 0x7f << 60 spans the 64-bit boundary
	if v.Lo() != 0xf000000000000000 || v.Hi() != 0x7 {
		t.Errorf("got hi=%#x lo=%#x", v.Hi(), v.Lo())
	}
}

func TestInt128Negate(t *testing.T) {
	v := Int128FromInt64(12345)
	if got := v.Negate().String(); got != "-12345" {
		t.Errorf("got %s, want -12345", got)
	}
	if got := v.Negate().Negate().String(); got != "12345" {
		t.Errorf("double negate = %s, want 12345", got)
	}
}

func TestScaleInt128Up(t *testing.T) {
	v := scaleInt128(Int128FromInt64(123), 20, 0)
	if got := v.String(); got != "12300000000000000000000" {
		t.Errorf("got %s, want 12300000000000000000000", got)
	}
}

func TestScaleInt128Down(t *testing.T) {
	v := scaleInt128(Int128FromInt64(123456789), 0, 6)
	if got := v.String(); got != "123" {
		t.Errorf("got %s, want 123", got)
	}
	v = scaleInt128(Int128FromInt64(-123456789), 0, 6)
	if got := v.String(); got != "-123" {
		t.Errorf("got %s, want -123", got)
	}
}

func TestHive11DecimalBounds(t *testing.T) {
	want := "99999999999999999999999999999999999999"
	if got := hive11DecimalMax.String(); got != want {
		t.Errorf("max = %s, want %s", got, want)
	}
	if got := hive11DecimalMin.String(); got != "-"+want {
		t.Errorf("min = %s, want -%s", got, want)
	}
	if hive11DecimalMin.Cmp(hive11DecimalMax) != -1 {
		t.Error("min is not below max")
	}
	inside := scaleInt128(Int128FromInt64(1), 37, 0)
	if inside.Cmp(hive11DecimalMax) != -1 {
		t.Error("10^37 should be inside the range")
	}
	outside := scaleInt128(Int128FromInt64(1), 38, 0)
	if outside.Cmp(hive11DecimalMax) != 1 {
		t.Error("10^38 should be outside the range")
	}
}

func TestInt128ToDecimalString(t *testing.T) {
	tests := []struct {
		value int64
		scale int
		want  string
	}{
		{12345, 2, "123.45"},
		{-12345, 2, "-123.45"},
		{5, 3, "0.005"},
		{12345, 0, "12345"},
	}
	for _, test := range tests {
		if got := Int128FromInt64(test.value).ToDecimalString(test.scale); got != test.want {
			t.Errorf("ToDecimalString(%d, %d) = %s, want %s", test.value, test.scale, got, test.want)
		}
	}
}
