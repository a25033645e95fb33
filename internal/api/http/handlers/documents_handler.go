package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/livara/chat-service/internal/api/dto"
	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/service"
)

// DocumentsHandler exposes knowledge-base document upload and the admin
// approval workflow.
type DocumentsHandler struct {
	documents *service.DocumentService
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(documentService *service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{documents: documentService}
}

// Upload handles POST /api/documents. Uploads land in pending state until
// an admin reviews them.
func (h *DocumentsHandler) Upload(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)

	var req dto.DocumentUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.FileName == "" {
		return fiber.NewError(http.StatusBadRequest, "file_name required")
	}

	teamID := req.TeamID
	if !claims.Role.AdminTier() {
		teamID = claims.TeamID
	}
	doc, err := h.documents.Upload(c.Context(), teamID, req.FileName, req.ContentType, req.SizeBytes, claims.UserID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": documentResponse(doc)})
}

// List handles GET /api/documents. Non-admins only see their own team's
// documents.
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)

	var teamID *int64
	if queried := c.QueryInt("team_id"); queried > 0 {
		id := int64(queried)
		teamID = &id
	}
	if !claims.Role.AdminTier() {
		teamID = claims.TeamID
	}

	docs, err := h.documents.List(c.Context(), teamID)
	if err != nil {
		return err
	}
	resp := make([]fiber.Map, 0, len(docs))
	for i := range docs {
		resp = append(resp, documentResponse(&docs[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"documents": resp}})
}

// Review handles PUT /api/admin/documents/:id/review.
func (h *DocumentsHandler) Review(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.DocumentReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	status := domain.DocumentStatus(req.Status)
	if status != domain.DocumentStatusApproved && status != domain.DocumentStatusRejected {
		return fiber.NewError(http.StatusBadRequest, "status must be approved or rejected")
	}

	doc, err := h.documents.Review(c.Context(), id, status, claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": documentResponse(doc)})
}

func documentResponse(doc *domain.Document) fiber.Map {
	return fiber.Map{
		"id":           doc.ID,
		"team_id":      doc.TeamID,
		"file_name":    doc.FileName,
		"content_type": doc.ContentType,
		"size_bytes":   doc.SizeBytes,
		"status":       doc.Status,
		"uploaded_by":  doc.UploadedBy,
		"reviewed_by":  doc.ReviewedBy,
		"reviewed_at":  doc.ReviewedAt,
		"created_at":   doc.CreatedAt,
	}
}
