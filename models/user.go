package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the current-session identity decoded from the externally
// issued token. Account storage and login live outside this service.
type User struct {
	ID   primitive.ObjectID `json:"id"`
	Role string             `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
