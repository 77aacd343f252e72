package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/apiclient"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/session"
)

// DomainHandler serves the list, new and detail views of one data domain.
type DomainHandler struct {
	spec domain.DomainSpec
	log  zerolog.Logger
}

func NewDomainHandler(spec domain.DomainSpec, log zerolog.Logger) *DomainHandler {
	return &DomainHandler{spec: spec, log: log.With().Str("domain", spec.Name).Logger()}
}

// List returns one page of records.
//
// @Summary      List records
// @Tags         domains
// @Produce      json
// @Param        domain    path      string  true   "Domain route, e.g. profiles"
// @Param        name      query     string  false  "Name filter"
// @Param        after_id  query     string  false  "Cursor"
// @Param        limit     query     int     false  "Page size"
// @Param        sort_by   query     string  false  "Sort field"
// @Param        order     query     string  false  "asc or desc"
// @Success      200       {object}  listPageResponse
// @Failure      302
// @Router       /{domain} [get]
func (h *DomainHandler) List(c echo.Context) error {
	sc, err := sessionOf(c)
	if err != nil {
		return err
	}
	var params domain.ListParams
	if err := bindAndValidate(c, &params); err != nil {
		return err
	}

	page, err := sc.Client.Records(h.spec).List(c.Request().Context(), &params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listPageResponse{Domain: toDomainModel(h.spec), Query: params, Page: page})
}

// New describes the create form with the allowed status values.
//
// @Summary      New record form
// @Tags         domains
// @Produce      json
// @Param        domain  path      string  true  "Domain route, e.g. profiles"
// @Success      200     {object}  newFormResponse
// @Router       /{domain}/new [get]
func (h *DomainHandler) New(c echo.Context) error {
	sc, err := sessionOf(c)
	if err != nil {
		return err
	}
	options, err := h.statusOptions(c.Request().Context(), sc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newFormResponse{
		Domain:        toDomainModel(h.spec),
		Fields:        recordFields,
		StatusOptions: options,
	})
}

// Create posts a new record.
//
// @Summary      Create record
// @Tags         domains
// @Accept       json
// @Produce      json
// @Param        domain  path      string              true  "Domain route, e.g. profiles"
// @Param        body    body      domain.RecordInput  true  "Record"
// @Success      201     {object}  domain.CreatedRef
// @Failure      405     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /{domain} [post]
func (h *DomainHandler) Create(c echo.Context) error {
	sc, err := sessionOf(c)
	if err != nil {
		return err
	}
	var in domain.RecordInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.checkStatus(ctx, sc, in.Status); err != nil {
		return err
	}

	ref, err := sc.Client.Records(h.spec).Create(ctx, in)
	if err != nil {
		return err
	}
	h.log.Info().Str("id", ref.ID).Msg("record created")
	return c.JSON(http.StatusCreated, ref)
}

// Get returns one record.
//
// @Summary      Record detail
// @Tags         domains
// @Produce      json
// @Param        domain  path      string  true  "Domain route, e.g. profiles"
// @Param        id      path      string  true  "Record _id"
// @Success      200     {object}  detailResponse
// @Failure      404     {object}  map[string]string
// @Router       /{domain}/{id} [get]
func (h *DomainHandler) Get(c echo.Context) error {
	sc, err := sessionOf(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	rec, err := sc.Client.Records(h.spec).Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	resp := detailResponse{Domain: toDomainModel(h.spec), Editable: h.spec.Can(domain.CapUpdate), Record: rec}
	if resp.Editable {
		if resp.StatusOptions, err = h.statusOptions(ctx, sc); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Update patches a record.
//
// @Summary      Update record
// @Tags         domains
// @Accept       json
// @Produce      json
// @Param        domain  path      string               true  "Domain route, e.g. profiles"
// @Param        id      path      string               true  "Record _id"
// @Param        body    body      domain.RecordUpdate  true  "Changed fields"
// @Success      200     {object}  domain.ControlRecord
// @Failure      405     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /{domain}/{id} [patch]
func (h *DomainHandler) Update(c echo.Context) error {
	sc, err := sessionOf(c)
	if err != nil {
		return err
	}
	var patch domain.RecordUpdate
	if err := bindAndValidate(c, &patch); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if patch.Status != nil {
		if err := h.checkStatus(ctx, sc, *patch.Status); err != nil {
			return err
		}
	}

	rec, err := sc.Client.Records(h.spec).Update(ctx, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// statusOptions resolves the domain's status dropdown. A config failure
// leaves the dropdown empty unless the backend rejected the session.
func (h *DomainHandler) statusOptions(ctx context.Context, sc *session.Context) ([]domain.DropdownItem, error) {
	if _, err := sc.EnsureConfig(ctx); err != nil {
		if apiclient.IsUnauthorized(apiclient.StatusOf(err)) {
			return nil, err
		}
		h.log.Warn().Err(err).Msg("config unavailable for status options")
	}
	return sc.Config.DropdownItems(h.spec.Collection, statusEnumerator), nil
}

// checkStatus rejects a status that the configuration does not list.
func (h *DomainHandler) checkStatus(ctx context.Context, sc *session.Context, status string) error {
	if status == "" {
		return nil
	}
	if _, err := h.statusOptions(ctx, sc); err != nil {
		return err
	}
	return sc.Config.CheckOption(h.spec.Collection, statusEnumerator, status)
}
