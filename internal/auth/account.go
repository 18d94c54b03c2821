package auth

import (
	"time"
)

type Role string

const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

func (r Role) IsValid() bool {
	return r == RoleTrainer || r == RoleClient
}

type Account struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	TrainerID    *int      `json:"trainerId,omitempty"`
	ClientID     *int      `json:"clientId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Trainer struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	TrainerCode string    `json:"trainerCode"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SignUpTrainerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type SignUpClientRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	TrainerCode string `json:"trainerCode"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token       string   `json:"token"`
	Account     *Account `json:"account"`
	TrainerCode string   `json:"trainerCode,omitempty"`
}

// newTrainer and newClient are the repo inputs, already validated and hashed.
type newTrainer struct {
	Name         string
	Email        string
	PasswordHash string
	TrainerCode  string
}

type newClient struct {
	TrainerID    int
	Name         string
	Phone        string
	Email        string
	PasswordHash string
}
