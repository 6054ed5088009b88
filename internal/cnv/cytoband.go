package cnv

import "strings"

// ReduceCytobands collapses the overlapping band labels of one chromosome,
// given in reference-table order, into a single label or "first-last" span.
// When both ends share an arm letter it is dropped from the last label
// ("p13.11", "p12.3" -> "p13.11-12.3"); different arms are joined as-is.
// It returns false when labels is empty.
func ReduceCytobands(labels []string) (string, bool) {
	if len(labels) == 0 {
		return "", false
	}

	seen := make(map[string]bool, len(labels))
	unique := make([]string, 0, len(labels))
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}

	if len(unique) == 1 {
		return unique[0], true
	}

	first := unique[0]
	last := unique[len(unique)-1]

	arm := ""
	if strings.HasPrefix(first, "p") || strings.HasPrefix(first, "q") {
		arm = first[:1]
	}
	if arm != "" && strings.HasPrefix(last, arm) {
		last = last[1:]
	}

	return first + "-" + last, true
}
