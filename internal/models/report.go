package models

import "time"

// Role identifies one contribution category tracked in a report.
type Role string

const (
	RoleAuthored      Role = "authored"
	RoleShepherded    Role = "shepherded"
	RoleResponsibleAD Role = "responsible_ad"
	RoleBalloted      Role = "balloted"
	RoleAcknowledged  Role = "acknowledged"
)

// RoleOrder is the fixed order in which categories are fetched and printed.
var RoleOrder = [5]Role{
	RoleAuthored,
	RoleShepherded,
	RoleResponsibleAD,
	RoleBalloted,
	RoleAcknowledged,
}

// Label returns the display name used in the printed report.
func (r Role) Label() string {
	switch r {
	case RoleAuthored:
		return "Authored"
	case RoleShepherded:
		return "Shepherded"
	case RoleResponsibleAD:
		return "Responsible AD"
	case RoleBalloted:
		return "Balloted"
	case RoleAcknowledged:
		return "Acknowledged"
	}
	return string(r)
}

// Category holds the document identifiers matching one role.
type Category struct {
	Role Role
	IDs  []string
}

// Count reports how many documents matched the category.
func (c Category) Count() int {
	return len(c.IDs)
}

// Report is the aggregate of one run: all five categories in print order
// plus the elapsed wall-clock time of the queries.
type Report struct {
	Categories []Category
	Elapsed    time.Duration
}
