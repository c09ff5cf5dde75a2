package auth

import "context"

// Permission keys follow "<resource>.<action>". Handlers never re-implement
// permission logic; they ask the injected checker.
const (
	PermProfileRead    = "profile.read"
	PermProfileWrite   = "profile.write"
	PermRecordsRead    = "records.read"
	PermRecordsWrite   = "records.write"
	PermSalaryRead     = "salary.read"
	PermSalaryWrite    = "salary.write"
	PermDocumentsRead  = "documents.read"
	PermDocumentsWrite = "documents.write"
)

var DefaultPermissions = []string{
	PermProfileRead,
	PermProfileWrite,
	PermRecordsRead,
	PermRecordsWrite,
	PermSalaryRead,
	PermSalaryWrite,
	PermDocumentsRead,
	PermDocumentsWrite,
}

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermProfileRead,
		PermRecordsRead,
		PermSalaryRead,
		PermDocumentsRead,
	},
	RoleHR: {
		PermProfileRead,
		PermProfileWrite,
		PermRecordsRead,
		PermRecordsWrite,
		PermSalaryRead,
		PermSalaryWrite,
		PermDocumentsRead,
		PermDocumentsWrite,
	},
	RoleAdmin: DefaultPermissions,
}

// Checker is the capability collaborator: can this role perform
// "<resource>.<action>"? Passed by reference wherever a permission gate is
// needed instead of re-deriving admin flags per surface.
type Checker interface {
	HasPermission(ctx context.Context, roleID, permission string) (bool, error)
}
