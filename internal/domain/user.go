package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
)

// AuthUser is the identity record. Its ID is shared with the profile row.
type AuthUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             Role       `json:"role"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (u *AuthUser) Confirmed() bool {
	return u.EmailConfirmedAt != nil
}

// AuthCode is a single-use code exchanged for a session.
type AuthCode struct {
	Code      string     `json:"-"`
	UserID    string     `json:"user_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// Session is what the identity provider hands back after a successful exchange.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *AuthUser `json:"user"`
}

type AccountType string

const (
	AccountTypeIndividual AccountType = "individual"
	AccountTypeCompany    AccountType = "company"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
)

type Profile struct {
	ID                 string             `json:"id"`
	FullName           string             `json:"full_name"`
	CompanyName        string             `json:"company_name"`
	Phone              string             `json:"phone"`
	Address            string             `json:"address"`
	AccountType        AccountType        `json:"account_type"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
