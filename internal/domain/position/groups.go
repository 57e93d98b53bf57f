// Package position classifies detailed position labels into the coarse
// groups used for cohort scaling.
package position

// Group labels assigned to players.
const (
	GroupGoalkeeper = "Goalkeeper"
	GroupDefender   = "Defender"
	GroupMidfielder = "Midfielder"
	GroupForward    = "Forward"
	GroupOther      = "Other"
)

// Groups lists every assignable group, GroupOther last.
var Groups = []string{
	GroupGoalkeeper,
	GroupDefender,
	GroupMidfielder,
	GroupForward,
	GroupOther,
}

var groupByLabel = map[string]string{
	"GK": GroupGoalkeeper,

	"CB":  GroupDefender,
	"RCB": GroupDefender,
	"LCB": GroupDefender,
	"RB":  GroupDefender,
	"LB":  GroupDefender,
	"RWB": GroupDefender,
	"LWB": GroupDefender,

	"DMF":  GroupMidfielder,
	"RDMF": GroupMidfielder,
	"LDMF": GroupMidfielder,
	"CMF":  GroupMidfielder,
	"RCMF": GroupMidfielder,
	"LCMF": GroupMidfielder,
	"AMF":  GroupMidfielder,
	"RAMF": GroupMidfielder,
	"LAMF": GroupMidfielder,

	"CF":  GroupForward,
	"SS":  GroupForward,
	"RW":  GroupForward,
	"LW":  GroupForward,
	"RWF": GroupForward,
	"LWF": GroupForward,
}

// GroupFor maps a detailed position label to its group, or GroupOther when
// the label has no entry.
func GroupFor(label string) string {
	if group, ok := groupByLabel[label]; ok {
		return group
	}
	return GroupOther
}

// Known reports whether group is one of the assignable group labels.
func Known(group string) bool {
	for _, g := range Groups {
		if g == group {
			return true
		}
	}
	return false
}
