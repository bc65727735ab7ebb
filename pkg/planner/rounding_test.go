package planner

import "testing"

func TestRounding(t *testing.T) {
	if got := Round5(13); got != 15 {
		t.Errorf("Round5(13) = %d", got)
	}
	if got := Round5(12); got != 10 {
		t.Errorf("Round5(12) = %d", got)
	}
	if got := Round5(12.5); got != 10 {
		t.Errorf("Round5(12.5) = %d, ties should go to even", got)
	}
	if got := Round5(-3); got != 0 {
		t.Errorf("Round5(-3) = %d", got)
	}
	if got := Floor5(14); got != 10 {
		t.Errorf("Floor5(14) = %d", got)
	}
	if got := Ceil5(11); got != 15 {
		t.Errorf("Ceil5(11) = %d", got)
	}
	if got := Ceil5(20); got != 20 {
		t.Errorf("Ceil5(20) = %d", got)
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		0:   "",
		-5:  "",
		45:  "45m",
		60:  "1h",
		90:  "1h 30m",
		152: "2h 30m",
	}
	for in, want := range cases {
		if got := FormatMinutes(in); got != want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}
