package orc

import (
	"fmt"
	"sync"
	"time"
)

// Timezone wraps a time.Location with the two lookups the timestamp decoder
// needs: the writer's epoch (seconds since the Unix epoch of 2015-01-01 in
// that zone) and the zone variant in force at a given instant.
//
// Timezones are interned: two columns reading the same zone share one
// handle, and the timestamp decoder compares handles by pointer to detect
// the writer-equals-reader fast path.
type Timezone struct {
	name  string
	loc   *time.Location
	epoch int64
}

// TimezoneVariant is one stretch of a timezone's rules: an abbreviation, a
// UTC offset, and whether daylight saving is in force.
type TimezoneVariant struct {
	Name      string
	GmtOffset int64
	IsDst     bool
}

// HasSameRule reports whether two variants apply identical clock rules.
func (v TimezoneVariant) HasSameRule(o TimezoneVariant) bool {
	return v.Name == o.Name && v.GmtOffset == o.GmtOffset && v.IsDst == o.IsDst
}

var (
	timezoneMu    sync.Mutex
	timezoneCache = map[string]*Timezone{}

	// GMT is the zone forced on both sides of a TIMESTAMP_INSTANT column.
	GMT = newTimezone("GMT", time.UTC)
)

func newTimezone(name string, loc *time.Location) *Timezone {
	return &Timezone{
		name:  name,
		loc:   loc,
		epoch: time.Date(2015, time.January, 1, 0, 0, 0, 0, loc).Unix(),
	}
}

// LoadTimezone returns the interned Timezone with the given IANA name.
func LoadTimezone(name string) (*Timezone, error) {
	if name == "" || name == "GMT" || name == "UTC" {
		return GMT, nil
	}
	timezoneMu.Lock()
	defer timezoneMu.Unlock()
	if tz, ok := timezoneCache[name]; ok {
		return tz, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("orc: unknown timezone %q: %w", name, err)
	}
	tz := newTimezone(name, loc)
	timezoneCache[name] = tz
	return tz, nil
}

// Name returns the timezone's IANA name.
func (tz *Timezone) Name() string { return tz.name }

// Epoch returns the seconds since the Unix epoch of 2015-01-01 00:00:00 in
// this zone, the reference point ORC timestamps are written against.
func (tz *Timezone) Epoch() int64 { return tz.epoch }

// Variant returns the zone variant in force at the given instant, expressed
// as seconds since the Unix epoch.
func (tz *Timezone) Variant(seconds int64) TimezoneVariant {
	t := time.Unix(seconds, 0).In(tz.loc)
	name, offset := t.Zone()
	return TimezoneVariant{Name: name, GmtOffset: int64(offset), IsDst: t.IsDST()}
}
