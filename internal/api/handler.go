// Package api exposes the statement processor over HTTP.
package api

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/faturatools/fatura-processor/internal/models"
	"github.com/faturatools/fatura-processor/internal/parser"
	"github.com/faturatools/fatura-processor/internal/pipeline"
	"github.com/faturatools/fatura-processor/internal/report"
)

// Version reported by the health endpoint.
const Version = "1.1.0"

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "fatura-processor",
		BodyLimit: 32 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
	return app
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleConvert accepts a statement upload and responds with the
// processed report workbook as an xlsx attachment.
func HandleConvert(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Could not open uploaded file.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Could not read uploaded file.")
	}

	var bank models.BankType
	switch strings.ToLower(c.FormValue("bank")) {
	case "c6":
		bank = models.BankC6
	case "nubank":
		bank = models.BankNubank
	case "":
		bank, err = parser.DetectBank(data, fh.Filename)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
	default:
		return writeError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Unknown bank: %q. Use c6 or nubank.", c.FormValue("bank")))
	}

	res, err := pipeline.Build(data, bank, slog.Default())
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	out, err := report.Render(res)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Report generation failed: %v", err))
	}

	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="fatura_processada.xlsx"`)
	return c.Send(out)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
