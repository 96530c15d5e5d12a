package grid

import (
	"errors"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/util"
)

func attrMap(t *testing.T, vals map[string]interface{}) *util.OrderedMap {
	t.Helper()
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	om, err := util.NewOrderedMap(keys, vals)
	if err != nil {
		t.Fatalf("failed to build attribute map: %v", err)
	}
	return om
}

func sectionAttrs(section Section, vals [6]int32) map[string]interface{} {
	names := [6]string{"is", "ie", "js", "je", "ks", "ke"}
	m := make(map[string]interface{}, 6)
	for i, n := range names {
		m[n[:1]+string(section)+n[1:]] = vals[i]
	}
	return m
}

func TestParseExtents(t *testing.T) {
	attrs := attrMap(t, sectionAttrs(SectionDomain, [6]int32{1, 100, 1, 80, 1, 15}))

	e, err := ParseExtents(attrs, SectionDomain)
	if err != nil {
		t.Fatalf("ParseExtents failed: %v", err)
	}
	want := Extents{IS: 1, IE: 100, JS: 1, JE: 80, KS: 1, KE: 15}
	if e != want {
		t.Fatalf("got %+v, want %+v", e, want)
	}
	if e.NX() != 100 || e.NY() != 80 || e.NZ() != 15 {
		t.Fatalf("bad sizes: nx=%d ny=%d nz=%d", e.NX(), e.NY(), e.NZ())
	}
}

func TestParseExtents_AllSections(t *testing.T) {
	m := sectionAttrs(SectionDomain, [6]int32{1, 10, 1, 10, 1, 5})
	for k, v := range sectionAttrs(SectionMemory, [6]int32{1, 6, 1, 6, 1, 5}) {
		m[k] = v
	}
	for k, v := range sectionAttrs(SectionTile, [6]int32{1, 5, 1, 5, 1, 5}) {
		m[k] = v
	}
	attrs := attrMap(t, m)

	mem, err := ParseExtents(attrs, SectionMemory)
	if err != nil {
		t.Fatalf("memory section: %v", err)
	}
	if mem.IE != 6 || mem.JE != 6 {
		t.Fatalf("memory section picked up wrong attributes: %+v", mem)
	}
	til, err := ParseExtents(attrs, SectionTile)
	if err != nil {
		t.Fatalf("tile section: %v", err)
	}
	if til.IE != 5 {
		t.Fatalf("tile section picked up wrong attributes: %+v", til)
	}
}

func TestParseExtents_MissingAttribute(t *testing.T) {
	m := sectionAttrs(SectionDomain, [6]int32{1, 10, 1, 10, 1, 5})
	delete(m, "kde")
	_, err := ParseExtents(attrMap(t, m), SectionDomain)
	if !errors.Is(err, ErrMissingMetadata) {
		t.Fatalf("expected ErrMissingMetadata, got %v", err)
	}
}

func TestParseExtents_NonInteger(t *testing.T) {
	m := sectionAttrs(SectionDomain, [6]int32{1, 10, 1, 10, 1, 5})
	m["jds"] = "not a number"
	_, err := ParseExtents(attrMap(t, m), SectionDomain)
	if !errors.Is(err, ErrMissingMetadata) {
		t.Fatalf("expected ErrMissingMetadata, got %v", err)
	}
}

func TestParseExtents_IntegerWidths(t *testing.T) {
	// Readers hand attribute values back in whatever width the file
	// used; all integral widths must parse.
	m := map[string]interface{}{
		"ids": int16(1), "ide": int32(10),
		"jds": int64(1), "jde": int(10),
		"kds": []int32{1}, "kde": int8(5),
	}
	e, err := ParseExtents(attrMap(t, m), SectionDomain)
	if err != nil {
		t.Fatalf("ParseExtents failed: %v", err)
	}
	if e.NX() != 10 || e.NY() != 10 || e.NZ() != 5 {
		t.Fatalf("bad sizes from mixed widths: %+v", e)
	}
}
