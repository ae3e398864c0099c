package model

import (
	"errors"
	"time"
)

// User represents an account in the system.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Username       string    `db:"username" json:"username"`
	FullName       string    `db:"full_name" json:"full_name"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	Bio            *string   `db:"bio" json:"bio"`
	AvatarURL      *string   `db:"avatar_url" json:"avatar_url"`
	CoverURL       *string   `db:"cover_url" json:"cover_url"`
	Location       *string   `db:"location" json:"location"`
	Website        *string   `db:"website" json:"website"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	IsVerified     bool      `db:"is_verified" json:"is_verified"`
	IsPrivate      bool      `db:"is_private" json:"is_private"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName returns the name used in notification messages: the full name
// when present, otherwise the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// UserSummary is the compact actor/author representation embedded in posts,
// comments and notifications.
type UserSummary struct {
	ID         int64   `db:"id" json:"id"`
	Username   string  `db:"username" json:"username"`
	FullName   string  `db:"full_name" json:"full_name"`
	AvatarURL  *string `db:"avatar_url" json:"avatar_url"`
	IsVerified bool    `db:"is_verified" json:"is_verified"`
}

// UserProfile is a user with derived relationship data for profile pages.
type UserProfile struct {
	User
	FollowersCount int  `json:"followers_count"`
	FollowingCount int  `json:"following_count"`
	PostsCount     int  `json:"posts_count"`
	IsFollowing    bool `json:"is_following"`
	IsFollowedBy   bool `json:"is_followed_by"`
}

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	Password  string  `json:"password"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	IsPrivate bool    `json:"is_private"`
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries the optional profile fields a user may change.
// Nil means "leave unchanged"; the merge is explicit and per-field so the
// mutable surface stays statically enumerable.
type UpdateUserRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	CoverURL  *string `json:"cover_url"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	IsPrivate *bool   `json:"is_private"`
}

// FollowStats holds the derived follower/following counts for a user.
type FollowStats struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
}

// User field limits, matching the column sizes.
const (
	MaxUsernameLength = 50
	MaxFullNameLength = 100
	MinPasswordLength = 8
)

var (
	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when registering with a taken email.
	ErrEmailExists = errors.New("email already registered")

	// ErrUsernameExists is returned when registering with a taken username.
	ErrUsernameExists = errors.New("username already taken")

	// ErrInvalidCredentials is returned when login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive is returned when a deactivated account authenticates.
	ErrUserInactive = errors.New("user account is inactive")
)
