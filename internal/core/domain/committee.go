package domain

// CommitteeState is the approval state of a committee.
type CommitteeState string

// Committee states. Only approved committees may hold meetings.
const (
	CommitteeStatePending   CommitteeState = "pending"
	CommitteeStateApproved  CommitteeState = "approved"
	CommitteeStateRejected  CommitteeState = "rejected"
	CommitteeStateDissolved CommitteeState = "dissolved"
)

// IsValid returns true if the committee state is recognised.
func (s CommitteeState) IsValid() bool {
	switch s {
	case CommitteeStatePending, CommitteeStateApproved, CommitteeStateRejected, CommitteeStateDissolved:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s CommitteeState) String() string {
	return string(s)
}

// CommitteeMember is an employee seated on a committee.
type CommitteeMember struct {
	EmployeeID string
	Role       string
}

// Committee is a standing body whose approval gates meeting scheduling.
// Its own lifecycle is managed elsewhere; the core only reads it.
type Committee struct {
	ID      string
	Name    string
	State   CommitteeState
	Members []CommitteeMember
}

// IsApproved reports whether the committee may hold meetings.
func (c *Committee) IsApproved() bool {
	return c.State == CommitteeStateApproved
}
