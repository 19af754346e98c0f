package main

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

var glossary = map[string]string{
	"limit":         "A limit is the value R that f(x) gets closer and closer to as x gets closer to c, without x ever being equal to c.",
	"approaches":    "x approaches c when it takes values as close to c as we like, from either side.",
	"function":      "A function assigns exactly one output f(x) to every input x in its domain.",
	"one-sided":     "A one-sided limit only looks at x values on one side of c: below it for the left-hand limit, above it for the right-hand limit.",
	"derivative":    "The derivative f'(x) is the limit of [f(x+h)-f(x)]/h as h approaches 0. It measures the instantaneous rate of change.",
	"slope":         "The slope of a line is rise over run: m = (y₂ - y₁)/(x₂ - x₁).",
	"quadratic":     "A quadratic equation has the form ax² + bx + c = 0. Its roots are x = (-b ± √(b²-4ac))/(2a).",
	"discriminant":  "The discriminant b²-4ac decides how many real roots a quadratic has: two if positive, one if zero, none if negative.",
	"hypotenuse":    "The hypotenuse is the side opposite the right angle, and the longest side of a right triangle.",
	"pythagorean":   "The Pythagorean theorem says a² + b² = c² for a right triangle with hypotenuse c.",
	"circle":        "A circle of radius r has area A = πr² and circumference 2πr.",
	"mean":          "The mean is the sum of the values divided by how many values there are.",
	"probability":   "Probability is the number of favourable outcomes divided by the number of equally likely outcomes.",
	"continuous":    "f is continuous at c when the limit of f(x) as x approaches c exists and equals f(c).",
	"infinity":      "A limit at infinity describes what f(x) approaches as x grows without bound.",
}

// lookup returns glossary terms that fuzzily match words of the question, in
// the order they first appear.
func lookup(question string) []string {
	words := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	})
	terms := make([]string, 0, len(glossary))
	for term := range glossary {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	seen := map[string]struct{}{}
	var out []string
	for _, word := range words {
		if len(word) < 3 {
			continue
		}
		best, bestDist := "", -1
		for _, term := range terms {
			dist := levenshtein.ComputeDistance(word, term)
			if dist > tolerance(term) {
				continue
			}
			if bestDist < 0 || dist < bestDist {
				best, bestDist = term, dist
			}
		}
		if best == "" {
			continue
		}
		if _, ok := seen[best]; ok {
			continue
		}
		seen[best] = struct{}{}
		out = append(out, best)
	}
	return out
}

func tolerance(term string) int {
	switch {
	case len(term) <= 4:
		return 0
	case len(term) <= 7:
		return 1
	default:
		return 2
	}
}

func answer(question, lessonTitle string) (string, []string) {
	terms := lookup(question)
	if len(terms) == 0 {
		if lessonTitle == "" {
			return "I don't have a note on that yet. Try selecting a single term.", nil
		}
		return "I don't have a note on that yet. Try selecting a single term from \"" + lessonTitle + "\".", nil
	}
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts = append(parts, glossary[term])
	}
	return strings.Join(parts, "\n\n"), terms
}
