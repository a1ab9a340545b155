package domain

// ProductionLine is the subset of a line record the workflow needs.
type ProductionLine struct {
	LineID         string  `json:"lineID"`
	Name           string  `json:"name"`
	FormApproverID *string `json:"formApproverID"` // Designated form approver, if any
}
