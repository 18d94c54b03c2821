package clients

import (
	"strings"
	"time"

	"github.com/2beens/liftly/internal/apperr"
	"github.com/2beens/liftly/internal/search"
)

type Client struct {
	ID         int       `json:"id"`
	TrainerID  int       `json:"trainerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Timezone   string    `json:"timezone"`
	GoalsNotes string    `json:"goalsNotes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type NewClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r NewClientRequest) normalize() (NewClientRequest, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Name == "" {
		return r, apperr.Validation("clients.add", "name", "Name is required")
	}
	return r, nil
}

type UpdateClientRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Timezone   string `json:"timezone"`
	GoalsNotes string `json:"goalsNotes"`
}

func (r UpdateClientRequest) normalize() (UpdateClientRequest, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Timezone = strings.TrimSpace(r.Timezone)
	if r.Name == "" {
		return r, apperr.Validation("clients.update", "name", "Name is required")
	}
	return r, nil
}

var searchFields = []search.Field[Client]{
	search.Value(func(c Client) string { return c.Name }),
	func(c Client) *string {
		if c.Email == "" {
			return nil
		}
		return &c.Email
	},
}

// Search keeps the clients whose name or email contains query.
func Search(clients []Client, query string) []Client {
	return search.Filter(clients, query, searchFields...)
}
