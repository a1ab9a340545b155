package models

// ApprovalLevel is a row of approval_levels.
type ApprovalLevel struct {
	LevelID       string  `db:"level_id" gorm:"column:level_id;primaryKey"`
	Name          string  `db:"name" gorm:"column:name"`
	NameLocalized *string `db:"name_localized" gorm:"column:name_localized"`
	LevelOrder    int     `db:"level_order" gorm:"column:level_order"`
	ApprovalType  string  `db:"approval_type" gorm:"column:approval_type"`
	IsActive      bool    `db:"is_active" gorm:"column:is_active"`
	AuditFields
}

// TableName sets the gorm table name.
func (ApprovalLevel) TableName() string { return "approval_levels" }

// ApprovalLevelAssignment is a row of approval_level_assignments.
type ApprovalLevelAssignment struct {
	AssignmentID string `db:"assignment_id" gorm:"column:assignment_id;primaryKey"`
	LevelID      string `db:"level_id" gorm:"column:level_id"`
	UserID       string `db:"user_id" gorm:"column:user_id"`
	AuditFields
}

// TableName sets the gorm table name.
func (ApprovalLevelAssignment) TableName() string { return "approval_level_assignments" }

// LevelApproverRow is an assignment joined with the user directory.
type LevelApproverRow struct {
	AssignmentID string  `db:"assignment_id" gorm:"column:assignment_id"`
	LevelID      string  `db:"level_id" gorm:"column:level_id"`
	UserID       string  `db:"user_id" gorm:"column:user_id"`
	Name         *string `db:"name" gorm:"column:name"`
	Email        *string `db:"email" gorm:"column:email"`
}
