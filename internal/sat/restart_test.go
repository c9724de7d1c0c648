package sat

import "testing"

func TestLubyRestart_sequence(t *testing.T) {
	r := &lubyRestart{unit: 1, idx: 1}
	want := []int64{1, 1, 2, 1, 1, 2, 4}
	for i, w := range want {
		if got := r.next(); got != w {
			t.Errorf("next() call %d = %d, want %d", i, got, w)
		}
	}
}

func TestGeometricRestart_grows(t *testing.T) {
	r := &geometricRestart{base: 100, factor: 2, cur: 100}

	first := r.next()
	second := r.next()
	third := r.next()

	if first != 100 {
		t.Errorf("first next() = %d, want 100", first)
	}
	if second <= first || third <= second {
		t.Errorf("geometricRestart did not grow: %d, %d, %d", first, second, third)
	}
}

func TestNewRestartSchedule_picksPolicy(t *testing.T) {
	if _, ok := newRestartSchedule(RestartLuby).(*lubyRestart); !ok {
		t.Errorf("newRestartSchedule(RestartLuby) did not return a *lubyRestart")
	}
	if _, ok := newRestartSchedule(RestartGeometric).(*geometricRestart); !ok {
		t.Errorf("newRestartSchedule(RestartGeometric) did not return a *geometricRestart")
	}
}
