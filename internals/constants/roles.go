package constants

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}
