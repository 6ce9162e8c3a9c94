package webhook

import (
	"encoding/json"
	"strings"

	"github.com/amishk599/jobboard/internal/model"
)

// Event types handled by the webhook.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event is the envelope of every delivery.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type emailAddress struct {
	EmailAddress string `json:"email_address"`
}

// userData is the subset of the provider's user object mirrored locally.
// Name fields are nullable upstream.
type userData struct {
	ID             string         `json:"id"`
	EmailAddresses []emailAddress `json:"email_addresses"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	ImageURL       string         `json:"image_url"`
}

func (d userData) toUser() model.User {
	u := model.User{ID: d.ID, Image: d.ImageURL}
	if len(d.EmailAddresses) > 0 {
		u.Email = d.EmailAddresses[0].EmailAddress
	}
	var first, last string
	if d.FirstName != nil {
		first = *d.FirstName
	}
	if d.LastName != nil {
		last = *d.LastName
	}
	u.Name = strings.TrimSpace(first + " " + last)
	return u
}

// deletedData is the payload of user.deleted.
type deletedData struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
