package appointment

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "08:00", want: "08:00"},
		{in: "8:05", want: "08:05"},
		{in: "19:40", want: "19:40"},
		{in: "23:59", want: "23:59"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMinutesBetween(t *testing.T) {
	a := TimeOfDay(10 * 60)
	b := TimeOfDay(10*60 + 19)
	if got := MinutesBetween(a, b); got != 19 {
		t.Fatalf("MinutesBetween = %d, want 19", got)
	}
	if got := MinutesBetween(b, a); got != 19 {
		t.Fatalf("MinutesBetween should be symmetric, got %d", got)
	}
	if got := MinutesBetween(a, a); got != 0 {
		t.Fatalf("MinutesBetween(a, a) = %d, want 0", got)
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	tod, _ := NewTimeOfDay(9, 30)

	data, err := json.Marshal(tod)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"09:30"` {
		t.Fatalf("Marshal = %s, want \"09:30\"", data)
	}

	var back TimeOfDay
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != tod {
		t.Fatalf("round trip = %s, want %s", back, tod)
	}

	if err := json.Unmarshal([]byte(`"25:00"`), &back); err == nil {
		t.Fatal("out-of-range time should fail to unmarshal")
	}
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay

	if err := tod.Scan(time.Date(2026, 9, 1, 14, 20, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time): %v", err)
	}
	if tod.String() != "14:20" {
		t.Fatalf("Scan(time.Time) = %s, want 14:20", tod)
	}

	if err := tod.Scan("09:05:00"); err != nil {
		t.Fatalf("Scan(string): %v", err)
	}
	if tod.String() != "09:05" {
		t.Fatalf("Scan(string) = %s, want 09:05", tod)
	}

	if err := tod.Scan([]byte("17:45:00")); err != nil {
		t.Fatalf("Scan([]byte): %v", err)
	}
	if tod.String() != "17:45" {
		t.Fatalf("Scan([]byte) = %s, want 17:45", tod)
	}

	if err := tod.Scan(42); err == nil {
		t.Fatal("Scan(int) should fail")
	}
}

func TestTimeOfDay_Value(t *testing.T) {
	tod, _ := NewTimeOfDay(8, 0)
	v, err := tod.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "08:00:00" {
		t.Fatalf("Value = %v, want 08:00:00", v)
	}
}
