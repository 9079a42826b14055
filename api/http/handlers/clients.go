package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/client"
)

// ClientHandler serves clients and their contacts.
type ClientHandler struct {
	useCase client.UseCase
}

func NewClientHandler(useCase client.UseCase) *ClientHandler {
	return &ClientHandler{useCase: useCase}
}

type clientRequest struct {
	ClientName      *string `json:"client_name"`
	Website         *string `json:"website"`
	MainEmail       *string `json:"main_email"`
	MainPhone       *string `json:"main_phone"`
	MainContactID   *int64  `json:"main_contact_id"`
	LastContactDate *string `json:"last_contact_date"`
}

func (r clientRequest) update() (client.Update, error) {
	last, err := parseDate("last_contact_date", r.LastContactDate)
	if err != nil {
		return client.Update{}, err
	}
	return client.Update{
		ClientName:      r.ClientName,
		Website:         r.Website,
		MainEmail:       r.MainEmail,
		MainPhone:       r.MainPhone,
		MainContactID:   r.MainContactID,
		LastContactDate: last,
	}, nil
}

// Create
// @Summary Create client
// @Tags    clients
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body clientRequest true "client"
// @Success 201 {object} client.Client
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "failed to create client")
	}
	var cl client.Client
	upd.Apply(&cl)
	out, err := h.useCase.Create(c.Context(), cl)
	if err != nil {
		return presenter.Fail(c, err, "failed to create client")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Get
// @Summary Get client
// @Tags    clients
// @Produce json
// @Security BearerAuth
// @Param   id path int true "client id"
// @Success 200 {object} client.Client
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /clients/{id} [get]
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Get(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to get client")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// List
// @Summary List clients
// @Tags    clients
// @Produce json
// @Security BearerAuth
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router  /clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.useCase.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list clients")
	}
	return presenter.List(c, items, limit, offset)
}

// Update
// @Summary Update client
// @Tags    clients
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "client id"
// @Param   input body clientRequest true "fields to change; main_contact_id 0 detaches"
// @Success 200 {object} client.Client
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /clients/{id} [patch]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.Update(c.Context(), id, upd)
	if err != nil {
		return presenter.Fail(c, err, "failed to update client")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete
// @Summary Delete client
// @Tags    clients
// @Security BearerAuth
// @Param   id path int true "client id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return presenter.Fail(c, err, "failed to delete client")
	}
	return c.SendStatus(http.StatusNoContent)
}

type contactRequest struct {
	ContactName     *string `json:"contact_name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	ClientID        *int64  `json:"client_id"`
	LastContactDate *string `json:"last_contact_date"`
}

func (r contactRequest) update() (client.ContactUpdate, error) {
	last, err := parseDate("last_contact_date", r.LastContactDate)
	if err != nil {
		return client.ContactUpdate{}, err
	}
	return client.ContactUpdate{
		ContactName:     r.ContactName,
		Email:           r.Email,
		Phone:           r.Phone,
		ClientID:        r.ClientID,
		LastContactDate: last,
	}, nil
}

// CreateContact
// @Summary Create contact
// @Tags    contacts
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body contactRequest true "contact"
// @Success 201 {object} client.Contact
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /contacts [post]
func (h *ClientHandler) CreateContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var ct client.Contact
	upd.Apply(&ct)
	out, err := h.useCase.CreateContact(c.Context(), ct)
	if err != nil {
		return presenter.Fail(c, err, "failed to create contact")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// GetContact
// @Summary Get contact
// @Tags    contacts
// @Produce json
// @Security BearerAuth
// @Param   id path int true "contact id"
// @Success 200 {object} client.Contact
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /contacts/{id} [get]
func (h *ClientHandler) GetContact(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.GetContact(c.Context(), id)
	if err != nil {
		return presenter.Fail(c, err, "failed to get contact")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// ListContacts
// @Summary List contacts
// @Tags    contacts
// @Produce json
// @Security BearerAuth
// @Param   client_id query int false "only contacts of this client"
// @Param   limit query int false "limit (default 50, max 200)"
// @Param   offset query int false "offset"
// @Success 200 {object} map[string]any
// @Router  /contacts [get]
func (h *ClientHandler) ListContacts(c *fiber.Ctx) error {
	clientID, err := queryID(c, "client_id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	limit, offset := parseLimitOffset(c, defaultLimit)
	items, err := h.useCase.ListContacts(c.Context(), clientID, limit, offset)
	if err != nil {
		return presenter.Fail(c, err, "failed to list contacts")
	}
	return presenter.List(c, items, limit, offset)
}

// UpdateContact
// @Summary Update contact
// @Tags    contacts
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "contact id"
// @Param   input body contactRequest true "fields to change; client_id 0 detaches"
// @Success 200 {object} client.Contact
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /contacts/{id} [patch]
func (h *ClientHandler) UpdateContact(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	upd, err := req.update()
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	out, err := h.useCase.UpdateContact(c.Context(), id, upd)
	if err != nil {
		return presenter.Fail(c, err, "failed to update contact")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// DeleteContact
// @Summary Delete contact
// @Tags    contacts
// @Security BearerAuth
// @Param   id path int true "contact id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /contacts/{id} [delete]
func (h *ClientHandler) DeleteContact(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenter.Fail(c, err, "")
	}
	if err := h.useCase.DeleteContact(c.Context(), id); err != nil {
		return presenter.Fail(c, err, "failed to delete contact")
	}
	return c.SendStatus(http.StatusNoContent)
}
