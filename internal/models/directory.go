package models

// User is a row of the users directory.
type User struct {
	UserID string  `db:"user_id" gorm:"column:user_id;primaryKey"`
	Name   *string `db:"name" gorm:"column:name"`
	Email  *string `db:"email" gorm:"column:email"`
	Role   string  `db:"role" gorm:"column:role"`
}

// TableName sets the gorm table name.
func (User) TableName() string { return "users" }

// ProductionLine is a row of production_lines.
type ProductionLine struct {
	LineID         string  `db:"line_id" gorm:"column:line_id;primaryKey"`
	Name           string  `db:"name" gorm:"column:name"`
	FormApproverID *string `db:"form_approver_id" gorm:"column:form_approver_id"`
}

// TableName sets the gorm table name.
func (ProductionLine) TableName() string { return "production_lines" }
