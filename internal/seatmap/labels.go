package seatmap

import (
	"fmt"
	"strings"
)

// indexToRowLabel converts a zero-based index to an alphabetical row label:
// 0 -> A, 25 -> Z, 26 -> AA, 27 -> AB.
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []byte{}
	for {
		res = append(res, byte('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// skipSet normalizes a skip list into a lookup set.
func skipSet(letters []string) map[string]struct{} {
	set := make(map[string]struct{}, len(letters))
	for _, l := range letters {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l != "" {
			set[l] = struct{}{}
		}
	}
	return set
}

// RowLetter returns the n-th (0-based) row label that is not in skip.  The
// walk visits at most n+len(skip)+1 labels because every skipped label can
// only occur once in the sequence; if that bound is exceeded a synthetic
// "Row<n+1>" label is returned instead.
func RowLetter(n int, skip map[string]struct{}) string {
	if n < 0 {
		return fallbackRowLabel(n)
	}
	limit := n + len(skip) + 1
	count := 0
	for idx := 0; idx < limit; idx++ {
		l := indexToRowLabel(idx)
		if _, skipped := skip[l]; skipped {
			continue
		}
		if count == n {
			return l
		}
		count++
	}
	return fallbackRowLabel(n)
}

func fallbackRowLabel(n int) string {
	return fmt.Sprintf("Row%d", n+1)
}
