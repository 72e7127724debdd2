package model

// UserRole is carried in the JWT issued by the users service; the users
// table itself belongs to that service.
type UserRole string

const (
	Candidate UserRole = "candidate"
	Recruiter UserRole = "recruiter"
	Admin     UserRole = "admin"
)
