package docvault

import "testing"

func TestBumpVersion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.0", "1.1"},
		{"1.1", "1.2"},
		{"1.9", "2.0"},
		{"2.9", "3.0"},
		{"9.9", "10.0"},
		{"10.0", "10.1"},
	}
	for _, c := range cases {
		got, err := BumpVersion(c.in)
		if err != nil {
			t.Errorf("BumpVersion(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("BumpVersion(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBumpVersion_Rejects(t *testing.T) {
	for _, in := range []string{"", "abc", "1.10", "1.", "-1.0", "1.0.0"} {
		if _, err := BumpVersion(in); err == nil {
			t.Errorf("BumpVersion(%q) should fail", in)
		}
	}
}

func TestVersionLess(t *testing.T) {
	if !VersionLess("1.9", "2.0") {
		t.Error("1.9 < 2.0")
	}
	if VersionLess("2.0", "1.9") {
		t.Error("2.0 is not < 1.9")
	}
	if VersionLess("1.1", "1.1") {
		t.Error("1.1 is not < itself")
	}
	if !VersionLess("9.9", "10.0") {
		t.Error("9.9 < 10.0 (numeric, not lexicographic)")
	}
}
