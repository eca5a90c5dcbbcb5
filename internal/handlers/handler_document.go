package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// documentHandler handles HTTP requests related to documents.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{
		documentService: ds,
	}
}

// registerDocumentRoutes registers routes related to documents. Registration
// is rate limited per client IP.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, registerLimiter *limiter.Limiter) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.POST("", middleware.RateLimit(registerLimiter), h.registerDocument)
		documents.GET("/:documentID", h.getDocument)
		documents.GET("/:documentID/entries", h.listEntriesByDocument)
	}
}

func (h *documentHandler) registerDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := callerUserID(c)
	logger.Info("Received request to register document",
		slog.String("case_file_id", req.CaseFileID),
		slog.String("original_filename", req.OriginalFilename))

	doc, err := h.documentService.RegisterDocument(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Case file not found for document registration", slog.String("case_file_id", req.CaseFileID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Case file not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error registering document", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register document in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register document"})
		}
		return
	}

	logger.Info("Document registered successfully", slog.String("document_id", doc.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Document not found", slog.String("document_id", documentID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to get document from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

func (h *documentHandler) listDocumentsByCaseFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caseFileID := c.Param("caseFileID")

	docs, err := h.documentService.ListDocumentsByCaseFile(c.Request.Context(), caseFileID)
	if err != nil {
		logger.Error("Failed to list documents from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = dto.ToDocumentResponse(&docs[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *documentHandler) listEntriesByDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	entries, err := h.documentService.ListEntriesByDocument(c.Request.Context(), documentID)
	if err != nil {
		logger.Error("Failed to list entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, responses)
}
