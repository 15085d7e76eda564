package tiers

import "strings"

// Ordered from lowest to highest. The tier_type enum is created from this
// list, so ordering by the column itself ranks ladder position.
var tierNames = []string{"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM", "EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER"}

// PointEligible is the tier set with comparable LP totals.
// Below master the ladder resets LP per division, so sums are meaningless.
var PointEligible = []string{"MASTER", "GRANDMASTER", "CHALLENGER"}

// EnumList renders the full ladder as a quoted SQL list, lowest first.
func EnumList() string {
	return quotedList(tierNames)
}

// PointEligibleList renders the point-eligible set as a quoted SQL list.
func PointEligibleList() string {
	return quotedList(PointEligible)
}

func quotedList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return strings.Join(quoted, ", ")
}
