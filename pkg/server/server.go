// Package server exposes the STF export as an HTTP converter service: a model
// snapshot goes in, an STF file comes out.
package server

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	stfexporter "github.com/hellenic-development/stf-exporter"
	"github.com/hellenic-development/stf-exporter/pkg/model"
)

// Options configures the converter service.
type Options struct {
	Operator       string
	ProgramName    string
	ProgramVersion string
	WindowPosition string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	BodyLimit      int
	AccessLog      bool
	Now            func() time.Time // nil = time.Now
}

// New builds the fiber application with its routes.
func New(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		BodyLimit:    opts.BodyLimit,
		AppName:      "STF Converter Service",
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	h := &handler{opts: opts}
	app.Post("/convert", h.convert)

	return app
}

type handler struct {
	opts Options
}

// convert turns the snapshot in the request body into STF text.
func (h *handler) convert(c fiber.Ctx) error {
	body := c.Body()
	log.Printf("[CONVERTER] Received snapshot, %d bytes", len(body))

	format, err := snapshotFormat(c.Query("format"), c.Get(fiber.HeaderContentType))
	if err != nil {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	}

	snap, err := model.ParseSnapshot(body, format)
	if err != nil {
		log.Printf("[CONVERTER] Snapshot error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := stfexporter.Run(stfexporter.Options{
		Provider:       snap,
		Operator:       h.opts.Operator,
		ProgramName:    h.opts.ProgramName,
		ProgramVersion: h.opts.ProgramVersion,
		WindowPosition: h.opts.WindowPosition,
		Now:            h.opts.Now,
	})
	if err != nil {
		log.Printf("[CONVERTER] Export error: %v", err)
		return c.Status(statusFor(err)).JSON(errorBody(err))
	}

	log.Printf("[CONVERTER] Export %s: %d room(s), %d luminaire type(s)",
		res.RunID, len(res.Document.Rooms), len(res.Document.Luminaires))

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", stfexporter.SuggestedFileName(res.Document.ProjectName)))
	c.Set("X-Export-Id", res.RunID)
	return c.SendString(res.STF)
}

// snapshotFormat picks the decoder from the format query parameter, falling
// back to the content type and finally to JSON.
func snapshotFormat(query, contentType string) (string, error) {
	switch query {
	case model.FormatJSON, model.FormatYAML, model.FormatTOML:
		return query, nil
	case "":
	default:
		return "", fmt.Errorf("unsupported snapshot format %q", query)
	}

	if contentType == "" {
		return model.FormatJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("invalid content type %q", contentType)
	}

	switch mediaType {
	case "application/json":
		return model.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return model.FormatYAML, nil
	case "application/toml", "text/toml":
		return model.FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported content type %q", mediaType)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, stfexporter.ErrNoSpacesFound),
		errors.Is(err, stfexporter.ErrInvalidSpaceBoundary),
		errors.Is(err, stfexporter.ErrCatalogKeyCollision):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func errorBody(err error) fiber.Map {
	body := fiber.Map{"error": err.Error()}
	var ee *stfexporter.ExportError
	if errors.As(err, &ee) {
		body["stage"] = ee.Stage.String()
		if ee.Room != "" {
			body["room"] = ee.Room
		}
	}
	return body
}
