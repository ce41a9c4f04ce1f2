package literal

import "testing"

func TestDateYearAndPrecision(t *testing.T) {
	v := "^2020-10-30T02:03:57+10:30/9"

	year, ok := DateYear(v)
	if !ok || year != 2020 {
		t.Fatalf("DateYear(%q) = %v, %v", v, year, ok)
	}
	precision, ok := DatePrecision(v)
	if !ok || precision != 9 {
		t.Fatalf("DatePrecision(%q) = %v, %v", v, precision, ok)
	}
}

func TestDateComponents(t *testing.T) {
	v := "^2020-10-30T02:03:57+10:30/9"

	if month, ok := DateMonth(v); !ok || month != 10 {
		t.Errorf("DateMonth = %v, %v", month, ok)
	}
	if day, ok := DateDay(v); !ok || day != 30 {
		t.Errorf("DateDay = %v, %v", day, ok)
	}
	if hour, ok := DateHour(v); !ok || hour != 2 {
		t.Errorf("DateHour = %v, %v", hour, ok)
	}
	if zone, ok := DateZone(v); !ok || zone != `"+10:30"` {
		t.Errorf("DateZone = %v, %v", zone, ok)
	}
}

func TestDateNotADate(t *testing.T) {
	if IsDate("Hans") {
		t.Error("plain symbol should not be a date")
	}
	if _, ok := DateYear("Hans"); ok {
		t.Error("DateYear on non-date should fail")
	}
}
