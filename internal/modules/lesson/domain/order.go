package domain

import (
	"cmp"
	"strings"
)

// CompareChapters orders chapter names with runs of digits compared by
// value, so "Chapter 2" sorts before "Chapter 10".
func CompareChapters(a, b string) int {
	for a != "" && b != "" {
		da, db := leadingDigits(a), leadingDigits(b)
		if da != "" && db != "" {
			na, nb := strings.TrimLeft(da, "0"), strings.TrimLeft(db, "0")
			if c := cmp.Compare(len(na), len(nb)); c != 0 {
				return c
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			a, b = a[len(da):], b[len(db):]
			continue
		}
		if a[0] != b[0] {
			return cmp.Compare(a[0], b[0])
		}
		a, b = a[1:], b[1:]
	}
	return cmp.Compare(len(a), len(b))
}

// CompareListed orders lessons by chapter, then order, then title.
func CompareListed(chapterA string, orderA int, titleA string, chapterB string, orderB int, titleB string) int {
	if c := CompareChapters(chapterA, chapterB); c != 0 {
		return c
	}
	if c := cmp.Compare(orderA, orderB); c != 0 {
		return c
	}
	return strings.Compare(titleA, titleB)
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
