package timeutils

import (
	"testing"
	"time"
)

func TestPeriodContains(t *testing.T) {

	period := Period{
		Start: mustParseTime("2023-09-12T09:00:00+01:00"),
		End:   mustParseTime("2023-09-12T10:00:00+01:00"),
	}

	type subTest struct {
		name             string
		t                time.Time
		expectedContains bool
	}

	subTests := []subTest{
		{"Before", mustParseTime("2023-09-12T08:59:59+01:00"), false},
		{"AtStart", mustParseTime("2023-09-12T09:00:00+01:00"), true},
		{"Within", mustParseTime("2023-09-12T09:30:00+01:00"), true},
		{"AtEnd", mustParseTime("2023-09-12T10:00:00+01:00"), false},
		{"After", mustParseTime("2023-09-12T10:00:01+01:00"), false},
	}
	for _, subTest := range subTests {
		t.Run(subTest.name, func(t *testing.T) {
			actual := period.Contains(subTest.t)
			if actual != subTest.expectedContains {
				t.Errorf("Got %v, expected %v", actual, subTest.expectedContains)
			}
		})
	}

}

func TestLastingUntil(t *testing.T) {
	end := mustParseTime("2023-09-12T10:00:00+01:00")
	period := LastingUntil(end, 24*time.Hour)

	if period.End != end {
		t.Errorf("Got end %v, expected %v", period.End, end)
	}
	expectedStart := mustParseTime("2023-09-11T10:00:00+01:00")
	if period.Start != expectedStart {
		t.Errorf("Got start %v, expected %v", period.Start, expectedStart)
	}
}
