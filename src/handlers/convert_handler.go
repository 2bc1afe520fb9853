package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/taxformfill/src/config"
	"github.com/username/taxformfill/src/logger"
	"github.com/username/taxformfill/src/models"
	secvalidation "github.com/username/taxformfill/src/security/validation"
	"github.com/username/taxformfill/src/services"
	"github.com/username/taxformfill/src/utils"
)

type ConvertHandler struct {
	convertService services.ConvertService
}

func NewConvertHandler(service services.ConvertService) *ConvertHandler {
	return &ConvertHandler{
		convertService: service,
	}
}

// conversionResponse is the JSON shape returned to clients; the filled
// document bytes are only reachable through the archive endpoint.
type conversionResponse struct {
	ID          string                  `json:"id"`
	FormIDs     []string                `json:"formIds"`
	FormsData   models.FormsData        `json:"formsData"`
	Sheets      []services.SheetOutcome `json:"sheets"`
	Validation  models.ValidationResult `json:"validation"`
	ArchivePath string                  `json:"archivePath"`
}

func toResponse(result *services.ConversionResult) conversionResponse {
	formIDs := result.FormIDs
	if formIDs == nil {
		formIDs = []string{}
	}
	return conversionResponse{
		ID:          result.ID,
		FormIDs:     formIDs,
		FormsData:   result.FormsData,
		Sheets:      result.Sheets,
		Validation:  result.Validation,
		ArchivePath: fmt.Sprintf("/api/convert/%s/archive", result.ID),
	}
}

func (h *ConvertHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		logger.L.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := secvalidation.ValidateClientContentType(clientContentType); err != nil {
		logger.L.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := secvalidation.ValidateFileContentByMagicBytes(file); err != nil {
		logger.L.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := h.optionsFromRequest(r)
	logger.L.Info("Processing conversion request", "filename", fileHeader.Filename, "year", opts.Year, "validate", opts.Validate)

	result, err := h.convertService.ProcessWorkbook(file, opts)
	if err != nil {
		if errors.Is(err, services.ErrWorkbookUnreadable) || errors.Is(err, services.ErrNoSheets) {
			logger.L.Warn("Conversion failed to read workbook", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error reading workbook: %v", err), http.StatusBadRequest)
		} else {
			logger.L.Error("Internal error processing workbook", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toResponse(result)); err != nil {
		logger.L.Error("Error encoding JSON response for conversion result", "error", err)
	}
}

// optionsFromRequest builds the dispatch options from config defaults,
// overridden by the request's form values where present.
func (h *ConvertHandler) optionsFromRequest(r *http.Request) models.DispatchOptions {
	opts := models.DispatchOptions{
		Year:          config.Cfg.TaxYear,
		Validate:      config.Cfg.ValidateForms,
		SkipEmptyRows: config.Cfg.SkipEmptyRows,
	}
	if yearStr := r.FormValue("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			opts.Year = year
		} else {
			logger.L.Warn("Ignoring invalid year form value", "year", yearStr)
		}
	}
	if v := r.FormValue("validate"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.Validate = b
		}
	}
	if v := r.FormValue("skipEmptyRows"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.SkipEmptyRows = b
		}
	}
	return opts
}

func (h *ConvertHandler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, err := h.convertService.GetResult(id)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("Conversion not found: %s", secvalidation.SanitizeForFormulaInjection(id)), http.StatusNotFound)
		return
	}

	response := toResponse(result)

	currentETag, etagErr := utils.GenerateETag(response)
	if etagErr != nil {
		logger.L.Error("Failed to generate ETag for conversion result", "conversionID", id, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("%q", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.L.Error("Error encoding JSON response for conversion result", "conversionID", id, "error", err)
	}
}

func (h *ConvertHandler) HandleGetArchive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	archive, err := h.convertService.Archive(id)
	if err != nil {
		if errors.Is(err, services.ErrResultNotFound) {
			utils.SendJSONError(w, fmt.Sprintf("Conversion not found: %s", secvalidation.SanitizeForFormulaInjection(id)), http.StatusNotFound)
		} else {
			logger.L.Error("Error building archive", "conversionID", id, "error", err)
			utils.SendJSONError(w, "An internal error occurred while building the archive.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".zip"))
	if _, err := w.Write(archive); err != nil {
		logger.L.Error("Error writing archive response", "conversionID", id, "error", err)
	}
}
