package household

import "testing"

func TestParseOwner(t *testing.T) {
	testCases := []struct {
		in       string
		wantSelf bool
		wantID   string
	}{
		{in: "", wantSelf: true},
		{in: "me", wantSelf: true},
		{in: "B", wantID: "B"},
	}
	for _, tc := range testCases {
		got := ParseOwner(tc.in)
		if got.IsSelf() != tc.wantSelf {
			t.Errorf("ParseOwner(%q).IsSelf() = %v, want %v", tc.in, got.IsSelf(), tc.wantSelf)
		}
		if id, _ := got.Member(); id != tc.wantID {
			t.Errorf("ParseOwner(%q).Member() = %q, want %q", tc.in, id, tc.wantID)
		}
		if back := ParseOwner(got.String()); !back.Equal(got) {
			t.Errorf("ParseOwner(%q) does not survive String(): %v", tc.in, back)
		}
	}
}
