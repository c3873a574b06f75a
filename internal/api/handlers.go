package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dupe-arranger/internal/config"
	"dupe-arranger/internal/engine"
	"dupe-arranger/internal/export"
	"dupe-arranger/internal/naming"
	"dupe-arranger/internal/preview"
	"dupe-arranger/internal/scene"

	"github.com/labstack/echo/v4"
)

// MaxPreviewSize caps the size query parameter of the preview endpoint.
const MaxPreviewSize = config.MaxPreviewSize

// Handler serves build, naming and preview requests. It keeps no state
// between requests.
type Handler struct {
	cfg     config.Config
	version string
}

// NewHandler creates a handler whose preview defaults come from cfg.
func NewHandler(cfg config.Config, version string) *Handler {
	return &Handler{cfg: cfg, version: version}
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// HandleBuild places every copy of the posted job and returns the export
// document. Accept selects JSON (default), YAML or MessagePack.
func (h *Handler) HandleBuild(c echo.Context) error {
	req, apiErr := bindJob(c)
	if apiErr != nil {
		return apiErr
	}

	host := scene.NewMemory()
	if _, err := engine.Apply(c.Request().Context(), host, req.Count, req.Template, req.Naming, req.Arrangement, req.Parent, req.Options()...); err != nil {
		return fromEngine(err)
	}
	doc := export.NewDocument(req.Template.Name, req.Arrangement.Mode().String(), export.FromObjects(host.Objects()))

	format := negotiate(c.Request().Header.Get(echo.HeaderAccept))
	if format == export.FormatJSON {
		return c.JSON(http.StatusOK, doc)
	}
	var buf bytes.Buffer
	if err := export.Encode(&buf, format, doc); err != nil {
		return NewInternalError("failed to encode response", err)
	}
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

// HandleNames returns only the names the job would produce. The arrangement
// block is optional here; when present it decides the count for grids.
func (h *Handler) HandleNames(c echo.Context) error {
	job, apiErr := parseJob(c)
	if apiErr != nil {
		return apiErr
	}
	if job.Arrangement.Mode == "" {
		job.Arrangement.Mode = "linear"
	}
	req, err := job.Resolve()
	if err != nil {
		return fromEngine(err)
	}

	count, err := engine.ResolveCount(req.Count, req.Arrangement)
	if err != nil {
		return fromEngine(err)
	}
	names, err := naming.Generate(count, req.Template, req.Naming)
	if err != nil {
		return fromEngine(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"template": req.Template.Name,
		"count":    len(names),
		"names":    names,
	})
}

// HandlePreview renders the posted job. Query parameters: format
// (webp|png|tga), view (top|front|side), size, labels.
func (h *Handler) HandlePreview(c echo.Context) error {
	format, err := preview.ParseImageFormat(c.QueryParam("format"))
	if err != nil {
		return NewBadRequestError("unknown image format", err)
	}
	viewName := c.QueryParam("view")
	if viewName == "" {
		viewName = h.cfg.View
	}
	view, err := preview.ParseView(viewName)
	if err != nil {
		return NewBadRequestError("unknown view", err)
	}

	opts := preview.Options{
		Size:        h.cfg.PreviewSize,
		Supersample: h.cfg.Supersample,
		View:        view,
		Labels:      h.cfg.Labels,
	}
	if s := c.QueryParam("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 16 || n > MaxPreviewSize {
			return NewBadRequestError(fmt.Sprintf("size must be an integer in [16, %d]", MaxPreviewSize), err)
		}
		opts.Size = n
	}
	if l := c.QueryParam("labels"); l != "" {
		on, err := strconv.ParseBool(l)
		if err != nil {
			return NewBadRequestError("labels must be a boolean", err)
		}
		opts.Labels = on
	}

	req, apiErr := bindJob(c)
	if apiErr != nil {
		return apiErr
	}
	specs, err := engine.Build(req.Count, req.Template, req.Naming, req.Arrangement, req.Options()...)
	if err != nil {
		return fromEngine(err)
	}

	img := preview.Render(specs, req.Template, opts)
	var buf bytes.Buffer
	if err := preview.Encode(&buf, img, format); err != nil {
		return NewInternalError("failed to encode preview", err)
	}
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func parseJob(c echo.Context) (*config.Job, *APIError) {
	job, err := config.ParseJob(c.Request().Body)
	if err != nil {
		return nil, NewBadRequestError("invalid job body", err)
	}
	return job, nil
}

func bindJob(c echo.Context) (config.Request, *APIError) {
	job, apiErr := parseJob(c)
	if apiErr != nil {
		return config.Request{}, apiErr
	}
	req, err := job.Resolve()
	if err != nil {
		return config.Request{}, fromEngine(err)
	}
	return req, nil
}

// negotiate picks the export format from an Accept header.
func negotiate(accept string) export.Format {
	accept = strings.ToLower(accept)
	switch {
	case strings.Contains(accept, "msgpack"):
		return export.FormatMsgpack
	case strings.Contains(accept, "yaml"):
		return export.FormatYAML
	default:
		return export.FormatJSON
	}
}
