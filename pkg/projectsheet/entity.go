package projectsheet

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const StatusGenerated = "generated"

// Sheet is a rendered project sheet plus the data it was rendered from.
type Sheet struct {
	ID               int64     `json:"id"`
	ProjectID        int64     `json:"project_id"`
	ProjectName      string    `json:"project_name"` // read-only, joined from projects
	Title            string    `json:"title"`
	Status           string    `json:"status"`
	GeneratedBy      uuid.UUID `json:"generated_by"`
	GeneratedContent string    `json:"generated_content,omitempty"`
	TemplateData     Data      `json:"template_data"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Data is the snapshot handed to the project sheet template.
type Data struct {
	Project       ProjectData  `json:"project"`
	Client        *ClientData  `json:"client"`
	Contact       *ContactData `json:"contact"`
	User          UserData     `json:"user"`
	GeneratedDate string       `json:"generated_date"`
}

type ProjectData struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Date          *string  `json:"date"`
	ContractValue *float64 `json:"contract_value"`
	Location      string   `json:"location"`
	MainImageURL  *string  `json:"main_image_url"`
}

type ClientData struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type ContactData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UserData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Map converts d into template variables.
func (d Data) Map() map[string]any {
	project := map[string]any{
		"name":           d.Project.Name,
		"description":    d.Project.Description,
		"date":           nil,
		"contract_value": nil,
		"location":       d.Project.Location,
		"main_image_url": nil,
	}
	if d.Project.Date != nil {
		project["date"] = *d.Project.Date
	}
	if d.Project.ContractValue != nil {
		project["contract_value"] = *d.Project.ContractValue
	}
	if d.Project.MainImageURL != nil {
		project["main_image_url"] = *d.Project.MainImageURL
	}
	out := map[string]any{
		"project":        project,
		"client":         nil,
		"contact":        nil,
		"user":           map[string]any{"name": d.User.Name, "email": d.User.Email},
		"generated_date": d.GeneratedDate,
	}
	if d.Client != nil {
		out["client"] = map[string]any{
			"name":    d.Client.Name,
			"website": d.Client.Website,
			"email":   d.Client.Email,
			"phone":   d.Client.Phone,
		}
	}
	if d.Contact != nil {
		out["contact"] = map[string]any{
			"name":  d.Contact.Name,
			"email": d.Contact.Email,
			"phone": d.Contact.Phone,
		}
	}
	return out
}

// Repository stores sheets. Reads are scoped to the owning user.
type Repository interface {
	Create(ctx context.Context, s *Sheet) error
	Get(ctx context.Context, owner uuid.UUID, id int64) (Sheet, error)
	// List returns the owner's sheets newest first, without content.
	List(ctx context.Context, owner uuid.UUID, limit, offset int) ([]Sheet, error)
	Update(ctx context.Context, s Sheet) error
	Delete(ctx context.Context, owner uuid.UUID, id int64) error
}
