package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/username/taxformfill/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed client-declared MIME types.
var AllowedClientContentTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // .xlsx
	"application/vnd.ms-excel": true, // older Excel clients
	"application/zip":          true, // .xlsx is a zip container
	"application/octet-stream": true, // fallback, but be more cautious
	"text/csv":                 false, // CSV is not accepted on the workbook endpoint
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	if allowed, exists := AllowedClientContentTypes[strings.ToLower(contentType)]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for workbook upload", contentType)
	}
	return nil
}

// xlsxMagic is the PK zip signature every .xlsx file starts with.
var xlsxMagic = []byte{0x50, 0x4B}

// ValidateFileContentByMagicBytes checks the actual file content signature.
// An .xlsx workbook is a zip container, so the first bytes must be the PK
// signature regardless of what the client declared.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) error {
	if file == nil {
		return fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 4)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// IMPORTANT: Reset the file read pointer to the beginning so the actual parser can read the full file.
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if n < len(xlsxMagic) || !bytes.HasPrefix(buffer[:n], xlsxMagic) {
		logger.L.Warn("File content does not look like an xlsx workbook")
		return fmt.Errorf("file content is not consistent with an xlsx workbook")
	}

	logger.L.Debug("File content signature validated")
	return nil
}
