package domain

import "time"

// User es el registro persistido por cuenta registrada.
type User struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	IsAccountVerified bool       `json:"is_account_verified"`
	VerifyOTPHash     string     `json:"-"`
	VerifyOTPExpireAt *time.Time `json:"-"`
	ResetOTPHash      string     `json:"-"`
	ResetOTPExpireAt  *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// SetVerifyOTP guarda hash y expiracion juntos.
func (u *User) SetVerifyOTP(hash string, expiresAt time.Time) {
	u.VerifyOTPHash = hash
	u.VerifyOTPExpireAt = &expiresAt
}

func (u *User) ClearVerifyOTP() {
	u.VerifyOTPHash = ""
	u.VerifyOTPExpireAt = nil
}

// SetResetOTP guarda hash y expiracion juntos.
func (u *User) SetResetOTP(hash string, expiresAt time.Time) {
	u.ResetOTPHash = hash
	u.ResetOTPExpireAt = &expiresAt
}

func (u *User) ClearResetOTP() {
	u.ResetOTPHash = ""
	u.ResetOTPExpireAt = nil
}

// Profile son los campos publicos del usuario autenticado.
type Profile struct {
	Name              string `json:"name"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

func (u User) Profile() Profile {
	return Profile{Name: u.Username, IsAccountVerified: u.IsAccountVerified}
}
