package models

// Role values recognized by the authorization layer. The role column is
// stored as a free-form string; only the exact value RoleAdmin grants
// elevated access.
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)
