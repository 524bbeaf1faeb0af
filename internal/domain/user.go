package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" bson:"name" gorm:"size:120"`
	Email     string    `json:"email" bson:"email" gorm:"uniqueIndex;size:190"`
	Password  string    `json:"-" bson:"password" gorm:"size:100"`
	Role      Role      `json:"role" bson:"role" gorm:"size:16"`
	Wishlist  []string  `json:"wishlist" bson:"wishlist" gorm:"serializer:json"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// PasswordReset stores only the hash of the token mailed to the user.
type PasswordReset struct {
	ID        string     `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	UserID    string     `json:"userId" bson:"userId" gorm:"index;size:36"`
	TokenHash string     `json:"-" bson:"tokenHash" gorm:"uniqueIndex;size:64"`
	ExpiresAt time.Time  `json:"expiresAt" bson:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty" bson:"usedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

func (r *PasswordReset) Usable(now time.Time) bool {
	return r.UsedAt == nil && now.Before(r.ExpiresAt)
}
