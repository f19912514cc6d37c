package naadsm

import "testing"

func TestCapacityChart_StepFunction(t *testing.T) {
	c := NewCapacityChart([]CapacityPoint{{Day: 5, Value: 2}, {Day: 10, Value: 4}})
	cases := []struct {
		day      int
		expected int
	}{
		{0, 0},
		{4, 0},
		{5, 2},
		{7, 2},
		{10, 4},
		{100, 4},
	}
	for _, c2 := range cases {
		if v := c.Value(c2.day); v != c2.expected {
			t.Errorf(UnequalIntParameterError, "capacity at day", c2.expected, v)
		}
	}
}

func TestCapacityChart_UnsortedInputIsSorted(t *testing.T) {
	c := NewCapacityChart([]CapacityPoint{{Day: 10, Value: 4}, {Day: 5, Value: 2}})
	if v := c.Value(7); v != 2 {
		t.Errorf(UnequalIntParameterError, "capacity at day 7 after sort", 2, v)
	}
}

func TestCapacityChart_ZeroAbsorbingDay(t *testing.T) {
	c := NewCapacityChart([]CapacityPoint{{Day: 0, Value: 3}, {Day: 5, Value: 0}})
	if c.PastZeroAbsorbingDay(4) {
		t.Error("expected day 4 to be before the zero-absorbing day")
	}
	if !c.PastZeroAbsorbingDay(5) {
		t.Error("expected day 5 to be at or past the zero-absorbing day")
	}
	if !c.PastZeroAbsorbingDay(100) {
		t.Error("expected a late day to remain past the zero-absorbing day")
	}
}

func TestCapacityChart_NeverZeroAbsorbing(t *testing.T) {
	c := NewCapacityChart([]CapacityPoint{{Day: 0, Value: 3}})
	if c.PastZeroAbsorbingDay(1000) {
		t.Error("expected a chart that never returns to zero to never be past-zero-absorbing")
	}
}
