package models

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsSuperUser  bool      `json:"is_super_user"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"-"`
}
