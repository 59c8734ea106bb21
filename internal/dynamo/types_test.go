package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0, 4.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{1, 0}, 1.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2, 3}
	b := State{4, 5, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}
}

func TestState_CloneIsIndependent(t *testing.T) {
	src := State{1, 2, 3, 4}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestStepError_Unwrap(t *testing.T) {
	err := &StepError{Step: 3, Time: 0.048, Wrapped: ErrUnstable}
	if !errors.Is(err, ErrUnstable) {
		t.Error("expected StepError to unwrap to ErrUnstable")
	}
	if err.Error() != "step 3 (t=0.0480): "+ErrUnstable.Error() {
		t.Errorf("unexpected message %q", err.Error())
	}
}
