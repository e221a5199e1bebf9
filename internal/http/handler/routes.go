package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"docreview/internal/service"
	"docreview/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal; review semantics live in the services.
func RegisterRoutes(app *fiber.App, store storage.DocumentStore, reviewSvc service.ReviewService, ingestSvc service.IngestService) {
	// Serve OpenAPI spec and a minimal docs page
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	app.Get("/categories", ListCategories(reviewSvc))
	app.Get("/categories/:category", GetCategoryView(reviewSvc))
	app.Get("/categories/:category/export", ExportCategory(reviewSvc))

	app.Get("/categories/:category/documents/:name", FetchDocument(store))
	app.Post("/categories/:category/documents", UploadDocument(ingestSvc))

	app.Get("/categories/:category/records/:name", FetchRecord(reviewSvc))
	app.Post("/categories/:category/records", SaveRecord(reviewSvc))
	app.Post("/categories/:category/promote", PromoteRecord(reviewSvc))
	app.Post("/categories/:category/demote", DemoteRecord(reviewSvc))
}

// HealthCheck checks document storage reachability.
func HealthCheck(store storage.DocumentStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListCategories returns one summary row per configured category.
func ListCategories(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sums, err := svc.Summaries(c.UserContext())
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(sums)
	}
}

// GetCategoryView returns the unreviewed/reviewed/no-result partition.
func GetCategoryView(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := svc.CategoryView(c.UserContext(), c.Params("category"))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(view)
	}
}

// FetchDocument streams the PDF bytes for one document.
func FetchDocument(store storage.DocumentStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := store.Get(c.UserContext(), c.Params("category"), c.Params("name"))
		if err != nil {
			return writeDomainError(c, err)
		}
		c.Set(fiber.HeaderContentType, info.ContentType)
		return c.SendStream(rc, int(info.Size))
	}
}

// UploadDocument ingests a new PDF (multipart/form-data, field name: file,
// optional field: name).
func UploadDocument(svc service.IngestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := c.Params("category")

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		name, err := svc.Ingest(c.UserContext(), category, c.FormValue("name"), fh.Filename, f)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok":       true,
			"name":     name,
			"category": category,
		})
	}
}

// FetchRecord returns a document's record and its derived review status.
func FetchRecord(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		rec, status, err := svc.GetRecord(c.UserContext(), c.Params("category"), name)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(fiber.Map{
			"name":   name,
			"record": rec,
			"status": status,
		})
	}
}

// recordRequest is the body for SaveRecord.
type recordRequest struct {
	Name   string         `json:"name"`
	Record map[string]any `json:"record"`
}

// nameRequest is the body for Promote/Demote.
type nameRequest struct {
	Name string `json:"name"`
}

// SaveRecord writes a record, preserving its current review state.
func SaveRecord(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req recordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if req.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "document name is required")
		}
		if req.Record == nil {
			return writeError(c, fiber.StatusBadRequest, "RECORD_REQUIRED", "record is required")
		}
		if err := svc.SaveRecord(c.UserContext(), c.Params("category"), req.Name, req.Record); err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(fiber.Map{
			"ok":      true,
			"message": fmt.Sprintf("record for %s saved", req.Name),
		})
	}
}

// PromoteRecord moves a record from unreviewed to reviewed.
func PromoteRecord(svc service.ReviewService) fiber.Handler {
	return moveRecord(svc.Promote, "promoted")
}

// DemoteRecord moves a record from reviewed back to unreviewed.
func DemoteRecord(svc service.ReviewService) fiber.Handler {
	return moveRecord(svc.Demote, "demoted")
}

func moveRecord(op func(ctx context.Context, category, name string) error, verb string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req nameRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if req.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "document name is required")
		}
		if err := op(c.UserContext(), c.Params("category"), req.Name); err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(fiber.Map{
			"ok":      true,
			"message": fmt.Sprintf("%s %s", req.Name, verb),
		})
	}
}

// ExportCategory returns a downloadable snapshot of both ledger collections.
func ExportCategory(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := c.Params("category")
		snap, err := svc.Export(c.UserContext(), category)
		if err != nil {
			return writeDomainError(c, err)
		}
		filename := fmt.Sprintf("review-export-%s-%s.json", category, snap.GeneratedAt.Format("20060102T150405Z"))
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.JSON(snap)
	}
}
