package cnv

import (
	"strconv"
	"strings"
)

// Event names.
const (
	EventDuplication = "duplication"
	EventDeletion    = "deletion"
)

// Zygosity values accepted by the lookup form.
const (
	ZygosityHomozygous   = "homozygous"
	ZygosityHeterozygous = "heterozygous"
)

// Copy-number suffixes for duplications.
const (
	CopyNumberHomozygous   = "[4]"
	CopyNumberHeterozygous = "[3]"
)

// NormalizeEventType maps an event type (or its abbreviation) to its event
// name. It returns false for anything other than duplication or deletion.
func NormalizeEventType(eventType string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case "duplication", "dup":
		return EventDuplication, true
	case "deletion", "del":
		return EventDeletion, true
	}
	return "", false
}

// CopyNumber returns the duplication copy-number suffix for a zygosity.
// Unknown or empty zygosity gets the heterozygous default.
func CopyNumber(zygosity string) string {
	switch strings.ToLower(strings.TrimSpace(zygosity)) {
	case "homozygous", "hom":
		return CopyNumberHomozygous
	default:
		return CopyNumberHeterozygous
	}
}

// BaseNotation returns the uncertain-breakpoint form chrC:(?_S)_(E_?).
func BaseNotation(chrom string, start, end int64) string {
	return "chr" + chrom + ":(?_" + strconv.FormatInt(start, 10) + ")_(" + strconv.FormatInt(end, 10) + "_?)"
}

// BuildHGVS returns the notation and event name for a CNV.
// Zygosity only affects duplications; pass "" when it is unknown.
func BuildHGVS(chrom string, start, end int64, eventType, zygosity string) (notation, eventName string, err error) {
	eventName, ok := NormalizeEventType(eventType)
	if !ok {
		return "", "", &Error{Kind: KindInvalidEventType, Input: eventType}
	}

	base := BaseNotation(chrom, start, end)
	if eventName == EventDeletion {
		return base + "del", eventName, nil
	}
	return base + " " + CopyNumber(zygosity), eventName, nil
}
