package keys

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Ember", "ember"},
		{"  Aqua Jet  ", "aqua_jet"},
		{"STONE WALL", "stone_wall"},
		{"already_normal", "already_normal"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
