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
)

// caseFileHandler handles HTTP requests related to case files.
type caseFileHandler struct {
	caseFileService portssvc.CaseFileSvcFacade
}

func newCaseFileHandler(cs portssvc.CaseFileSvcFacade) *caseFileHandler {
	return &caseFileHandler{
		caseFileService: cs,
	}
}

// registerCaseFileRoutes registers routes related to case files.
func registerCaseFileRoutes(rg *gin.RouterGroup, caseFileService portssvc.CaseFileSvcFacade, documentService portssvc.DocumentSvcFacade) {
	h := newCaseFileHandler(caseFileService)
	dh := newDocumentHandler(documentService)

	caseFiles := rg.Group("/case-files")
	{
		caseFiles.POST("", h.createCaseFile)
		caseFiles.GET("/:caseFileID", h.getCaseFile)
		caseFiles.GET("/:caseFileID/documents", dh.listDocumentsByCaseFile)
	}
}

func (h *caseFileHandler) createCaseFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCaseFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCaseFile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := callerUserID(c)
	logger.Info("Received request to create case file",
		slog.String("name", req.Name), slog.String("currency_code", req.CurrencyCode))

	caseFile, err := h.caseFileService.CreateCaseFile(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating case file", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create case file in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create case file"})
		}
		return
	}

	logger.Info("Case file created successfully", slog.String("case_file_id", caseFile.CaseFileID))
	c.JSON(http.StatusCreated, dto.ToCaseFileResponse(caseFile))
}

func (h *caseFileHandler) getCaseFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caseFileID := c.Param("caseFileID")

	caseFile, err := h.caseFileService.GetCaseFileByID(c.Request.Context(), caseFileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Case file not found", slog.String("case_file_id", caseFileID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Case file not found"})
		} else {
			logger.Error("Failed to get case file from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve case file"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCaseFileResponse(caseFile))
}

// callerUserID identifies the caller for audit columns. Authentication is out
// of scope for this service; upstream gateways forward the user ID.
func callerUserID(c *gin.Context) string {
	if userID := c.GetHeader("X-User-ID"); userID != "" {
		return userID
	}
	return "system"
}
