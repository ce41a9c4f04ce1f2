package literal

import (
	"database/sql/driver"

	"github.com/mattn/go-sqlite3"
)

// nullableString adapts a (string, bool) accessor to the nil-on-failure
// contract every SQL-facing literal function honors.
func nullableString(fn func(string) (string, bool)) func(string) any {
	return func(v string) any {
		s, ok := fn(v)
		if !ok {
			return nil
		}
		return s
	}
}

func nullableInt(fn func(string) (int64, bool)) func(string) any {
	return func(v string) any {
		n, ok := fn(v)
		if !ok {
			return nil
		}
		return n
	}
}

func nullableFloat(fn func(string) (float64, bool)) func(string) any {
	return func(v string) any {
		f, ok := fn(v)
		if !ok {
			return nil
		}
		return f
	}
}

// RegisterAll registers every Literal Layer function as a deterministic
// scalar UDF on conn. Called from the cache's ConnectHook so every
// connection the pool opens gets the full function set.
func RegisterAll(conn *sqlite3.SQLiteConn) error {
	funcs := map[string]any{
		"kgtk_stringify":   func(v string) string { return Stringify(v) },
		"kgtk_unstringify": func(v string) string { return Unstringify(v) },
		"kgtk_regex":       func(v, pattern string) bool { return Regex(v, pattern) },
		"kgtk_symbol":      func(v string) bool { return IsSymbol(v) },
		"kgtk_string":      func(v string) bool { return IsString(v) },

		"kgtk_lqstring":            func(v string) bool { return IsLangQualifiedString(v) },
		"kgtk_lqstring_text":       nullableString(LQStringText),
		"kgtk_lqstring_lang":       nullableString(LQStringLang),
		"kgtk_lqstring_lang_suffix": nullableString(LQStringLangSuffix),
		"kgtk_lqstring_suffix":     nullableString(LQStringSuffix),

		"kgtk_date":           func(v string) bool { return IsDate(v) },
		"kgtk_date_date":      nullableString(DateDate),
		"kgtk_date_time":      nullableString(DateTime),
		"kgtk_date_and_time":  nullableString(DateAndTime),
		"kgtk_date_year":      nullableInt(DateYear),
		"kgtk_date_month":     nullableInt(DateMonth),
		"kgtk_date_day":       nullableInt(DateDay),
		"kgtk_date_hour":      nullableInt(DateHour),
		"kgtk_date_minutes":   nullableInt(DateMinutes),
		"kgtk_date_seconds":   nullableFloat(DateSeconds),
		"kgtk_date_zone":      nullableString(DateZone),
		"kgtk_date_precision": nullableInt(DatePrecision),

		"kgtk_quantity":          func(v string) bool { return IsQuantity(v) },
		"kgtk_quantity_numeral":  nullableString(QuantityNumeral),
		"kgtk_quantity_number":   nullableFloat(QuantityNumber),
		"kgtk_quantity_si_units": nullableString(QuantitySIUnits),
		"kgtk_quantity_wd_units": nullableString(QuantityWDUnits),
		"kgtk_quantity_low_tolerance":  nullableFloat(QuantityLowTolerance),
		"kgtk_quantity_high_tolerance": nullableFloat(QuantityHighTolerance),

		"kgtk_geo_coords": func(v string) bool { return IsGeo(v) },
		"kgtk_lat":        nullableFloat(GeoLat),
		"kgtk_long":       nullableFloat(GeoLong),
	}

	for name, fn := range funcs {
		if err := conn.RegisterFunc(name, fn, true); err != nil {
			return err
		}
	}
	return nil
}

var _ driver.Conn = (*sqlite3.SQLiteConn)(nil) // documents the hook's expected conn type
