package auth

const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

const (
	PermPayrollRead     = "payroll.read"
	PermPayrollExport   = "payroll.export"
	PermPayrollSnapshot = "payroll.snapshot"
	PermEmployeesRead   = "employees.read"
	PermEmployeesWrite  = "employees.write"
	PermAdvancesWrite   = "advances.write"
	PermInputsWrite     = "inputs.write"
	PermActivityRead    = "activity.read"
)

var DefaultPermissions = []string{
	PermPayrollRead,
	PermPayrollExport,
	PermPayrollSnapshot,
	PermEmployeesRead,
	PermEmployeesWrite,
	PermAdvancesWrite,
	PermInputsWrite,
	PermActivityRead,
}

// Only admins reach the administrative mutator.
var RolePermissions = map[string][]string{
	RoleStandard: {
		PermPayrollRead,
		PermPayrollExport,
		PermEmployeesRead,
	},
	RoleAdmin: {
		PermPayrollRead,
		PermPayrollExport,
		PermPayrollSnapshot,
		PermEmployeesRead,
		PermEmployeesWrite,
		PermAdvancesWrite,
		PermInputsWrite,
		PermActivityRead,
	},
}

func HasPermission(role, permission string) bool {
	for _, perm := range RolePermissions[role] {
		if perm == permission {
			return true
		}
	}
	return false
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
