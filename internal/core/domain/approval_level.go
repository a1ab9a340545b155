package domain

// ApprovalType describes how a level is meant to be approved.
// Traversal treats both values identically: one recorded decision advances the level.
type ApprovalType string

const (
	ApprovalSequential ApprovalType = "sequential"
	ApprovalParallel   ApprovalType = "parallel"
)

// IsValid reports whether t is a known approval type.
func (t ApprovalType) IsValid() bool {
	return t == ApprovalSequential || t == ApprovalParallel
}

// ParseApprovalTypeOrDefault returns the approval type for s, falling back to
// sequential when s is empty or unknown.
func ParseApprovalTypeOrDefault(s string) ApprovalType {
	t := ApprovalType(s)
	if t.IsValid() {
		return t
	}
	return ApprovalSequential
}

// ApprovalLevel is one rung of the approval ladder.
type ApprovalLevel struct {
	LevelID       string       `json:"levelID"`
	Name          string       `json:"name"`
	NameLocalized *string      `json:"nameLocalized"`
	LevelOrder    int          `json:"levelOrder"`
	ApprovalType  ApprovalType `json:"approvalType"`
	IsActive      bool         `json:"isActive"`
	AuditFields
	Approvers []LevelApprover `json:"approvers"`
}

// LevelApprover is an assignment joined with the assigned user's profile.
type LevelApprover struct {
	AssignmentID string  `json:"assignmentID"`
	LevelID      string  `json:"levelID"`
	UserID       string  `json:"userID"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
}

// ApprovalLevelAssignment links a user to a level they may approve at.
type ApprovalLevelAssignment struct {
	AssignmentID string `json:"assignmentID"`
	LevelID      string `json:"levelID"`
	UserID       string `json:"userID"`
	AuditFields
}

// ApprovalLevelPatch holds the optional fields of a level update.
type ApprovalLevelPatch struct {
	Name          *string
	NameLocalized *string
	ApprovalType  *string
	IsActive      *bool
}

// Ladder is an ascending, order-unique sequence of levels.
type Ladder []ApprovalLevel

// Find returns the level positioned at order, if any.
func (l Ladder) Find(order int) (ApprovalLevel, bool) {
	for _, lvl := range l {
		if lvl.LevelOrder == order {
			return lvl, true
		}
	}
	return ApprovalLevel{}, false
}

// Next returns the level with the smallest order strictly greater than order.
func (l Ladder) Next(order int) (ApprovalLevel, bool) {
	var next ApprovalLevel
	found := false
	for _, lvl := range l {
		if lvl.LevelOrder > order && (!found || lvl.LevelOrder < next.LevelOrder) {
			next = lvl
			found = true
		}
	}
	return next, found
}

// FirstOrder is the order a new submission starts at. An empty ladder still
// needs one implicit decision, positioned at DefaultLevelOrder.
func (l Ladder) FirstOrder() int {
	if len(l) == 0 {
		return DefaultLevelOrder
	}
	first := l[0].LevelOrder
	for _, lvl := range l[1:] {
		if lvl.LevelOrder < first {
			first = lvl.LevelOrder
		}
	}
	return first
}

// DefaultLevelOrder is the position of an entry submitted with no active levels.
const DefaultLevelOrder = 1

// LadderMode selects which levels a decision traverses.
type LadderMode string

const (
	// LadderLive walks the active levels as they are at decision time.
	LadderLive LadderMode = "live"
	// LadderFrozen walks the levels the entry's ledger rows were seeded with at submission.
	LadderFrozen LadderMode = "frozen"
)

// IsValid reports whether m is a known ladder mode.
func (m LadderMode) IsValid() bool {
	return m == LadderLive || m == LadderFrozen
}
