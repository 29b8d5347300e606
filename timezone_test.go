package orc

import "testing"

func TestTimezoneEpoch(t *testing.T) {
	if got := GMT.Epoch(); got != 1420070400 {
		t.Errorf("GMT epoch = %d, want 1420070400", got)
	}
	la, err := LoadTimezone("America/Los_Angeles")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	// 2015-01-01 00:00:00 PST is 08:00:00 UTC
	if got := la.Epoch(); got != 1420070400+8*3600 {
		t.Errorf("Los Angeles epoch = %d, want %d", got, 1420070400+8*3600)
	}
}

func TestTimezoneInterned(t *testing.T) {
	a, err := LoadTimezone("GMT")
	if err != nil {
		t.Fatal(err)
	}
	b, err := LoadTimezone("UTC")
	if err != nil {
		t.Fatal(err)
	}
	if a != b || a != GMT {
		t.Error("GMT and UTC should intern to the same handle")
	}
}

func TestTimezoneVariant(t *testing.T) {
	la, err := LoadTimezone("America/Los_Angeles")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	winter := la.Variant(1420070400) // 2015-01-01
	if winter.GmtOffset != -8*3600 || winter.IsDst {
		t.Errorf("winter variant = %+v, want PST at -28800", winter)
	}
	summer := la.Variant(1435708800) // 2015-07-01
	if summer.GmtOffset != -7*3600 || !summer.IsDst {
		t.Errorf("summer variant = %+v, want PDT at -25200", summer)
	}
	if winter.HasSameRule(summer) {
		t.Error("PST and PDT should not share a rule")
	}
	if !winter.HasSameRule(la.Variant(1420070400 + 86400)) {
		t.Error("two winter instants should share a rule")
	}
}
