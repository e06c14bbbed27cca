package handlers

import (
	"bytes"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/gazette/internal/export"
	"github.com/jjenkins/gazette/internal/query"
)

// ExportHandler streams the filtered and sorted result set as CSV. Result
// sets over the export limit get a 422 naming the count and the limit.
func ExportHandler(engine *query.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		spec := SpecFromRequest(c)
		set := engine.Snapshot()

		records, err := query.ExportSet(set, spec)
		var limitErr *query.ExportLimitError
		if errors.As(err, &limitErr) {
			return c.Status(fiber.StatusUnprocessableEntity).SendString(limitErr.Error())
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error exporting results")
		}

		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, set.Header(), records); err != nil {
			log.Printf("Error writing export: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error exporting results")
		}

		c.Attachment(export.Filename)
		c.Set(fiber.HeaderContentType, export.ContentType)
		return c.Send(buf.Bytes())
	}
}
