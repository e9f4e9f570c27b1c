// Package api exposes the ingestion engine over HTTP: upload a statement,
// get back the parsed transactions, totals and warnings as JSON.
package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/engine"
	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/extractor"
	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

const version = "1.0.0"

// ConvertResponse is the JSON envelope for /api/convert.
type ConvertResponse struct {
	Success      bool                       `json:"success"`
	Error        string                     `json:"error,omitempty"`
	Bank         models.BankDetection       `json:"bank,omitempty"`
	Transactions []models.ParsedTransaction `json:"transactions"`
	Summary      models.Summary             `json:"summary"`
	Warnings     []string                   `json:"warnings,omitempty"`
	Import       []models.ImportTransaction `json:"import,omitempty"`
	Version      string                     `json:"version,omitempty"`
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "statement-ingest",
		BodyLimit: 32 << 20,
	})
	app.Use(recover.New())
	RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes on an existing app.
func RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"engine":  "fiber",
	})
}

// HandleConvert accepts a multipart upload ("file", a .pdf or .csv bank
// export) and runs it through the ingestion pipeline.
func HandleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" && ext != ".csv" {
		return writeError(c, fiber.StatusBadRequest, "only .pdf and .csv statements are supported")
	}

	tmp, err := os.CreateTemp("", "statement-*"+ext)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to buffer upload")
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	if err := c.SaveFile(fileHeader, tmp.Name()); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to save upload")
	}

	var result *models.ParseResult
	switch ext {
	case ".csv":
		content, readErr := os.ReadFile(tmp.Name())
		if readErr != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to read upload")
		}
		result, err = engine.ParseCSV(string(content))
	default:
		var pages [][]models.GlyphRun
		pages, err = extractor.ExtractGlyphs(tmp.Name())
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity,
				fmt.Sprintf("PDF extraction failed: %v", err))
		}
		result, err = engine.ParseGlyphs(pages)
	}
	if err != nil {
		log.WithError(err).WithField("file", fileHeader.Filename).Warn("conversion failed")
		return writeError(c, statusFor(err), err.Error())
	}

	// Nil slices marshal to JSON null, not [].
	txns := result.Transactions
	if txns == nil {
		txns = []models.ParsedTransaction{}
	}

	return c.JSON(ConvertResponse{
		Success:      true,
		Bank:         result.Bank,
		Transactions: txns,
		Summary:      result.Summary,
		Warnings:     result.Warnings,
		Import:       models.ToImport(txns),
		Version:      version,
	})
}

// statusFor maps the engine's error taxonomy to HTTP statuses. Everything
// in the taxonomy is the client's document's fault, hence 422.
func statusFor(err error) int {
	var (
		empty       *engine.EmptyDocumentError
		unreadable  *engine.UnreadableTextError
		unsupported *engine.UnsupportedFormatError
		none        *engine.NoTransactionsFoundError
		dates       *engine.TooManyInvalidDatesError
	)
	switch {
	case errors.As(err, &empty),
		errors.As(err, &unreadable),
		errors.As(err, &unsupported),
		errors.As(err, &none),
		errors.As(err, &dates):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.ParsedTransaction{},
	})
}
