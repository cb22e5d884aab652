package timeutils

import (
	"testing"
	"time"
)

func TestFloorHour(t *testing.T) {

	type subTest struct {
		name      string
		t         time.Time
		expectedT time.Time
	}

	subTests := []subTest{
		{"OnBoundary", mustParseTime("2023-09-12T09:00:00+01:00"), mustParseTime("2023-09-12T09:00:00+01:00")},
		{"MidHour", mustParseTime("2023-09-12T09:29:29+01:00"), mustParseTime("2023-09-12T09:00:00+01:00")},
		{"EndOfHour", mustParseTime("2023-09-12T09:59:59+01:00"), mustParseTime("2023-09-12T09:00:00+01:00")},
	}
	for _, subTest := range subTests {
		t.Run(subTest.name, func(t *testing.T) {
			actualT := FloorHour(subTest.t)
			if actualT != subTest.expectedT {
				t.Errorf("Got %v, expected %v", actualT, subTest.expectedT)
			}
		})
	}

}

func TestFloorDay(t *testing.T) {

	type subTest struct {
		name      string
		t         time.Time
		expectedT time.Time
	}

	subTests := []subTest{
		{"Midnight", mustParseTime("2023-11-01T00:00:00+00:00"), mustParseTime("2023-11-01T00:00:00+00:00")},
		{"Midday", mustParseTime("2023-11-01T12:30:00+00:00"), mustParseTime("2023-11-01T00:00:00+00:00")},
		{"EndOfDay", mustParseTime("2023-11-01T23:59:59+00:00"), mustParseTime("2023-11-01T00:00:00+00:00")},
	}
	for _, subTest := range subTests {
		t.Run(subTest.name, func(t *testing.T) {
			actualT := FloorDay(subTest.t)
			if actualT != subTest.expectedT {
				t.Errorf("Got %v, expected %v", actualT, subTest.expectedT)
			}
		})
	}

}

func TestFloorMonth(t *testing.T) {

	type subTest struct {
		name      string
		t         time.Time
		expectedT time.Time
	}

	subTests := []subTest{
		{"FirstOfMonth", mustParseTime("2023-11-01T00:00:00+00:00"), mustParseTime("2023-11-01T00:00:00+00:00")},
		{"MidMonth", mustParseTime("2023-11-15T18:45:00+00:00"), mustParseTime("2023-11-01T00:00:00+00:00")},
		{"EndOfMonth", mustParseTime("2023-11-30T23:59:59+00:00"), mustParseTime("2023-11-01T00:00:00+00:00")},
	}
	for _, subTest := range subTests {
		t.Run(subTest.name, func(t *testing.T) {
			actualT := FloorMonth(subTest.t)
			if actualT != subTest.expectedT {
				t.Errorf("Got %v, expected %v", actualT, subTest.expectedT)
			}
		})
	}

}

// mustParseTime returns the time.Time associated with the given string or panics.
func mustParseTime(str string) time.Time {
	time, err := time.Parse(time.RFC3339, str)
	if err != nil {
		panic(err)
	}
	return time
}
