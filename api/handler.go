package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/nocturne-org/nocturne/decompose"
	"github.com/nocturne-org/nocturne/errors"
	"github.com/nocturne-org/nocturne/legacy"
	"github.com/nocturne-org/nocturne/store"
)

type Handler struct {
	client       *mongo.Client
	entries      legacy.Repository[legacy.Entry]
	treatments   legacy.Repository[legacy.Treatment]
	deviceStatus legacy.Repository[legacy.DeviceStatus]
	entry        *decompose.EntryDecomposer
	treatment    *decompose.TreatmentDecomposer
	status       *decompose.DeviceStatusDecomposer
}

type Params struct {
	fx.In

	Client       *mongo.Client
	Entries      legacy.Repository[legacy.Entry]
	Treatments   legacy.Repository[legacy.Treatment]
	DeviceStatus legacy.Repository[legacy.DeviceStatus]
	Entry        *decompose.EntryDecomposer
	Treatment    *decompose.TreatmentDecomposer
	Status       *decompose.DeviceStatusDecomposer
}

func NewHandler(p Params) *Handler {
	return &Handler{
		client:       p.Client,
		entries:      p.Entries,
		treatments:   p.Treatments,
		deviceStatus: p.DeviceStatus,
		entry:        p.Entry,
		treatment:    p.Treatment,
		status:       p.Status,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/entries", h.PostEntry)
	e.POST("/v1/treatments", h.PostTreatment)
	e.POST("/v1/devicestatus", h.PostDeviceStatus)
}

// PostEntry ingests one legacy glucose entry and returns the decomposition
// result.
func (h *Handler) PostEntry(c echo.Context) error {
	entry := &legacy.Entry{}
	if err := c.Bind(entry); err != nil {
		return errors.BadRequest
	}
	if entry.Mills == 0 {
		return errors.BadRequest
	}

	// All writes for one decomposition happen in a single transaction, so a
	// failure cannot leave a subset of the entity types committed.
	result, err := store.WithTransaction(c.Request().Context(), h.client, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := h.entries.Save(sessCtx, entry); err != nil {
			return nil, err
		}
		return h.entry.Decompose(sessCtx, entry)
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// PostTreatment ingests one legacy treatment and returns the decomposition
// result.
func (h *Handler) PostTreatment(c echo.Context) error {
	treatment := &legacy.Treatment{}
	if err := c.Bind(treatment); err != nil {
		return errors.BadRequest
	}
	if treatment.Mills == 0 {
		return errors.BadRequest
	}

	result, err := store.WithTransaction(c.Request().Context(), h.client, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := h.treatments.Save(sessCtx, treatment); err != nil {
			return nil, err
		}
		return h.treatment.Decompose(sessCtx, treatment)
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// PostDeviceStatus ingests one legacy device status and returns the
// decomposition result.
func (h *Handler) PostDeviceStatus(c echo.Context) error {
	status := &legacy.DeviceStatus{}
	if err := c.Bind(status); err != nil {
		return errors.BadRequest
	}
	if status.Mills == 0 {
		return errors.BadRequest
	}

	result, err := store.WithTransaction(c.Request().Context(), h.client, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := h.deviceStatus.Save(sessCtx, status); err != nil {
			return nil, err
		}
		return h.status.Decompose(sessCtx, status)
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
