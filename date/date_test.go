package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	got := New(2024, time.February, 30)
	want := New(2024, time.March, 1)
	if got != want {
		t.Errorf("New(2024, 2, 30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-01-05", want: New(2024, time.January, 5)},
		{in: "2024-1-5", want: New(2024, time.January, 5)},
		{in: " 2024-12-31 ", want: New(2024, time.December, 31)},
		{in: "0d", want: Today()},
		{in: "-1d", want: Today().Add(-1)},
		{in: "+2w", want: Today().Add(14)},
		{in: "+1m", want: Today().AddMonth(1)},
		{in: "05/01/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_AddMonthClamped(t *testing.T) {
	testCases := []struct {
		from string
		n    int
		want string
	}{
		{from: "2024-01-31", n: 0, want: "2024-01-31"},
		{from: "2024-01-31", n: 1, want: "2024-02-29"},
		{from: "2024-01-31", n: 2, want: "2024-03-31"},
		{from: "2024-01-31", n: 3, want: "2024-04-30"},
		{from: "2023-01-31", n: 1, want: "2023-02-28"},
		{from: "2024-11-30", n: 3, want: "2025-02-28"},
		{from: "2024-01-15", n: 13, want: "2025-02-15"},
		{from: "2024-03-31", n: -1, want: "2024-02-29"},
	}
	for _, tc := range testCases {
		got := MustParse(tc.from).AddMonthClamped(tc.n)
		if got != MustParse(tc.want) {
			t.Errorf("%s.AddMonthClamped(%d) = %v, want %s", tc.from, tc.n, got, tc.want)
		}
	}
}

func TestDate_Compare(t *testing.T) {
	a, b := MustParse("2024-01-05"), MustParse("2024-01-10")
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare is not consistent for %v and %v", a, b)
	}
	if !a.Before(b) || !b.After(a) {
		t.Errorf("Before/After are not consistent for %v and %v", a, b)
	}
}

func TestDate_JSON(t *testing.T) {
	d := New(2024, time.March, 7)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"2024-03-07"` {
		t.Errorf("Marshal() = %s, want %q", b, `"2024-03-07"`)
	}
	var got Date
	if err := json.Unmarshal([]byte(`"2024-3-7"`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v, want %v", got, d)
	}
	if err := json.Unmarshal([]byte(`"-1d"`), &got); err == nil {
		t.Errorf("Unmarshal(%q) want error, relative dates are not allowed in data files", "-1d")
	}
}
