package timeofday

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFormat12h(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "12:05 AM"},
		{13, 0, "1:00 PM"},
		{23, 59, "11:59 PM"},
		{12, 0, "12:00 PM"},
		{11, 30, "11:30 AM"},
		{9, 7, "9:07 AM"},
	}
	for _, c := range cases {
		if got := Format12h(c.hour, c.minute); got != c.want {
			t.Fatalf("Format12h(%d, %d) = %q, want %q", c.hour, c.minute, got, c.want)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("09:30")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got != (TimeOfDay{Hour: 9, Minute: 30}) {
		t.Fatalf("unexpected %#v", got)
	}

	for _, bad := range []string{"", "9", "24:00", "10:60", "ab:cd", "10:5"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestOn_KeepsDateAndLocation(t *testing.T) {
	loc := time.FixedZone("COT", -5*60*60)
	day := time.Date(2026, 10, 15, 22, 45, 12, 99, loc)

	got := MustNew(7, 15).On(day)
	want := time.Date(2026, 10, 15, 7, 15, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Fatalf("On() = %v, want %v", got, want)
	}
}

func TestJSON_AcceptsStringAndObject(t *testing.T) {
	var fromString TimeOfDay
	if err := json.Unmarshal([]byte(`"16:00"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	var fromObject TimeOfDay
	if err := json.Unmarshal([]byte(`{"hours":16,"minutes":0,"value":"4:00 PM"}`), &fromObject); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if fromString != fromObject {
		t.Fatalf("expected equal, got %#v vs %#v", fromString, fromObject)
	}

	b, err := json.Marshal(fromObject)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"hours":16,"minutes":0,"value":"4:00 PM"}` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestLongDate(t *testing.T) {
	d := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	if got := LongDate(d); got != "15 de octubre de 2026" {
		t.Fatalf("LongDate = %q", got)
	}
	if got := LongDate(time.Time{}); got != "Fecha inválida" {
		t.Fatalf("LongDate(zero) = %q", got)
	}
}
