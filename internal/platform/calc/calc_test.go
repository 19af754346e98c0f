package calc_test

import (
	"errors"
	"math"
	"testing"

	"chalk/internal/platform/calc"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		expr string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 / 4", 2.5},
		{"-3 + 5", 2},
		{"-2^2", -4},
		{"2^3^2", 512},
		{"2 * -3", -6},
		{"7 % 3", 1},
		{"sqrt(16) + abs(-2)", 6},
		{"6 × 7 ÷ 2", 21},
		{"2*pi", 2 * math.Pi},
		{"  .5 + .25 ", 0.75},
	}
	for _, tc := range cases {
		got, err := calc.Evaluate(tc.expr)
		if err != nil {
			t.Fatalf("evaluate %q: %v", tc.expr, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("evaluate %q: got %v want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()
	cases := map[string]error{
		"":          calc.ErrSyntax,
		"1 +":       calc.ErrSyntax,
		"(1 + 2":    calc.ErrSyntax,
		"1 2":       calc.ErrSyntax,
		"foo(2)":    calc.ErrSyntax,
		"sqrt 4":    calc.ErrSyntax,
		"1 $ 2":     calc.ErrSyntax,
		"1.2.3":     calc.ErrSyntax,
		"4 / 0":     calc.ErrDivisionByZero,
		"4 % (2-2)": calc.ErrDivisionByZero,
		"sqrt(-1)":  calc.ErrDomain,
	}
	for expr, want := range cases {
		if _, err := calc.Evaluate(expr); !errors.Is(err, want) {
			t.Fatalf("evaluate %q: expected %v, got %v", expr, want, err)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	if got := calc.Format(42); got != "42" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := calc.Format(2.5); got != "2.5" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := calc.Format(1.0 / 3); got != "0.333333333333" {
		t.Fatalf("unexpected format: %q", got)
	}
}
