package main

import (
	"flag"
	"testing"

	"github.com/pk-codebox-evo/openmap/internal/coord"
)

func TestParseGeo(t *testing.T) {
	got, err := parseGeo("48.5, -8.25")
	if err != nil {
		t.Fatalf("parseGeo: %v", err)
	}
	if got != coord.LatLon(48.5, -8.25) {
		t.Errorf("parseGeo = %v, want 48.5,-8.25", got)
	}
	for _, bad := range []string{"", "1", "1,2,3", "a,2"} {
		if _, err := parseGeo(bad); err == nil {
			t.Errorf("parseGeo(%q): expected error", bad)
		}
	}
}

func TestParsePixel(t *testing.T) {
	got, err := parsePixel("310,240")
	if err != nil {
		t.Fatalf("parsePixel: %v", err)
	}
	if got != coord.Pt(310, 240) {
		t.Errorf("parsePixel = %v, want (310,240)", got)
	}
	if _, err := parsePixel("1.5,2"); err == nil {
		t.Error("expected error for fractional pixel")
	}
}

func TestParseAzimuths(t *testing.T) {
	got, err := parseAzimuths("n, 30,SW,,-90")
	if err != nil {
		t.Fatalf("parseAzimuths: %v", err)
	}
	want := []float64{0, 30, -135, -90}
	if len(got) != len(want) {
		t.Fatalf("parseAzimuths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("azimuth %d = %v, want %v", i, got[i], want[i])
		}
	}
	if _, err := parseAzimuths("north-ish"); err == nil {
		t.Error("expected error for unknown azimuth")
	}
}

func TestListFlag(t *testing.T) {
	var l listFlag
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&l, "p", "point")
	if err := fs.Parse([]string{"-p", "1,2", "-p", "3,4"}); err != nil {
		t.Fatal(err)
	}
	if len(l) != 2 || l[1] != "3,4" {
		t.Errorf("listFlag = %v", l)
	}
}
