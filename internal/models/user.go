package models

import "errors"

// ErrUserNotFound is returned when the upstream user directory has no
// record for the requested username or id.
var ErrUserNotFound = errors.New("user not found")

// UserProfile holds the subset of upstream profile fields we expose.
type UserProfile struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	Created     string `json:"created,omitempty"`
}
