package main

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/callflow"
	"github.com/meikuraledutech/callflow/format"
	"github.com/meikuraledutech/callflow/render"
	"github.com/sirupsen/logrus"
)

// deps are the collaborators behind the HTTP routes. store and renderer
// may be nil, in which case their routes answer 503.
type deps struct {
	compiler *callflow.Compiler
	store    callflow.Store
	renderer render.Renderer
	log      logrus.FieldLogger
}

// saveRequest is the body of POST /graphs.
type saveRequest struct {
	ID       string            `json:"id,omitempty"`
	Script   string            `json:"script"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func newApp(d deps) *fiber.App {
	app := fiber.New()

	unavailable := func(c fiber.Ctx, what string) error {
		return c.Status(503).JSON(fiber.Map{"error": what + " not configured"})
	}

	// ── Compile ───────────────────────────────────────────────────────
	app.Post("/compile", func(c fiber.Ctx) error {
		f, err := format.Lookup(c.Query("format"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		g := d.compiler.Compile(string(c.Body()))
		out, err := f.Format(g)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		d.log.WithFields(logrus.Fields{"nodes": len(g.Nodes), "format": f.Name()}).Debug("compiled script")
		c.Set(fiber.HeaderContentType, f.ContentType())
		return c.Send(out)
	})

	// ── Render ────────────────────────────────────────────────────────
	app.Post("/render", func(c fiber.Ctx) error {
		if d.renderer == nil {
			return unavailable(c, "renderer")
		}
		imgFormat, err := render.ParseImageFormat(c.Query("format"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		description, err := format.DOT{}.Format(d.compiler.Compile(string(c.Body())))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return sendImage(c, d, string(description), imgFormat)
	})

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", func(c fiber.Ctx) error {
		if d.store == nil {
			return unavailable(c, "store")
		}
		if err := d.store.CreateSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema created"})
	})

	app.Delete("/schema", func(c fiber.Ctx) error {
		if d.store == nil {
			return unavailable(c, "store")
		}
		if err := d.store.DropSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema dropped"})
	})

	// ── Graphs ────────────────────────────────────────────────────────
	app.Post("/graphs", func(c fiber.Ctx) error {
		if d.store == nil {
			return unavailable(c, "store")
		}
		var req saveRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		rec := &callflow.Record{
			Graph:    *d.compiler.Compile(req.Script),
			Script:   req.Script,
			Metadata: req.Metadata,
		}
		rec.ID = req.ID
		saved, err := d.store.SaveGraph(c.Context(), rec)
		if errors.Is(err, callflow.ErrInvalidGraph) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(saved)
	})

	app.Get("/graphs", func(c fiber.Ctx) error {
		if d.store == nil {
			return unavailable(c, "store")
		}
		list, err := d.store.ListGraphs(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(list)
	})

	app.Get("/graphs/:id", func(c fiber.Ctx) error {
		if d.store == nil {
			return unavailable(c, "store")
		}
		rec, err := d.store.GetGraph(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if rec == nil {
			return c.Status(404).JSON(fiber.Map{"error": "graph not found"})
		}
		return c.JSON(rec)
	})

	app.Get("/graphs/:id/description", func(c fiber.Ctx) error {
		if d.store == nil {
			return unavailable(c, "store")
		}
		f, err := format.Lookup(c.Query("format"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		rec, err := d.store.GetGraph(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if rec == nil {
			return c.Status(404).JSON(fiber.Map{"error": "graph not found"})
		}
		out, err := f.Format(&rec.Graph)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set(fiber.HeaderContentType, f.ContentType())
		return c.Send(out)
	})

	app.Get("/graphs/:id/image", func(c fiber.Ctx) error {
		if d.store == nil {
			return unavailable(c, "store")
		}
		if d.renderer == nil {
			return unavailable(c, "renderer")
		}
		imgFormat, err := render.ParseImageFormat(c.Query("format"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		rec, err := d.store.GetGraph(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if rec == nil {
			return c.Status(404).JSON(fiber.Map{"error": "graph not found"})
		}
		description, err := format.DOT{}.Format(&rec.Graph)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return sendImage(c, d, string(description), imgFormat)
	})

	app.Delete("/graphs/:id", func(c fiber.Ctx) error {
		if d.store == nil {
			return unavailable(c, "store")
		}
		err := d.store.DeleteGraph(c.Context(), c.Params("id"))
		if errors.Is(err, callflow.ErrGraphNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "graph not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	return app
}

// sendImage renders description and maps renderer failures to statuses:
// a malformed description is 422, a missing Graphviz install is 503.
func sendImage(c fiber.Ctx, d deps, description string, imgFormat render.ImageFormat) error {
	img, err := d.renderer.Render(c.Context(), description, imgFormat)
	var rerr *render.Error
	switch {
	case err == nil:
		c.Set(fiber.HeaderContentType, imgFormat.ContentType())
		return c.Send(img)
	case errors.Is(err, render.ErrUnavailable):
		return c.Status(503).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(504).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &rerr):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	default:
		d.log.WithError(err).Error("render failed")
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}
