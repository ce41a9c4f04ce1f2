package literal

import "testing"

func TestGeoComponents(t *testing.T) {
	v := "@47.1/8.5"
	if !IsGeo(v) {
		t.Fatalf("expected %q to be a geo-coordinate", v)
	}
	lat, ok := GeoLat(v)
	if !ok || lat != 47.1 {
		t.Errorf("GeoLat = %v, %v", lat, ok)
	}
	lon, ok := GeoLong(v)
	if !ok || lon != 8.5 {
		t.Errorf("GeoLong = %v, %v", lon, ok)
	}
}

func TestGeoNotAGeo(t *testing.T) {
	if IsGeo("Hans") {
		t.Error("bare symbol should not be a geo-coordinate")
	}
}
