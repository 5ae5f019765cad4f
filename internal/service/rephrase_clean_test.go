package service

import "testing"

func TestCleanRephrase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  How to tune GC?  \n", "How to tune GC?"},
		{"\uFEFFHow to tune GC?", "How to tune GC?"},
		{"```\nHow to tune GC?\n```", "How to tune GC?"},
		{"```text\nHow to tune GC?```", "How to tune GC?"},
		{"```How to tune GC?```", "How to tune GC?"},
		{`"How to tune GC?"`, "How to tune GC?"},
		{`"Compare "sync.Map" and map"`, `"Compare "sync.Map" and map"`},
		{`"`, `"`},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := cleanRephrase(tc.in); got != tc.want {
			t.Fatalf("cleanRephrase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
