package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kaviapp/kavi/internal/adapter"
	"github.com/kaviapp/kavi/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logRH.Error("Error encoding response", "error", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}

// saveUploadedFile writes the multipart upload under field to a temp
// path and returns it. The second return value is a user facing error
// message, empty on success.
func saveUploadedFile(r *http.Request, field string) (string, string) {
	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory", "err", errString)
		return "", errString
	}

	const maxUploadSize = 32 << 20 //32mb
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", "File too large or bad request"
	}

	fileReader, fileMetadata, err := r.FormFile(field)
	if err != nil {
		return "", "Could not retrieve file"
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename))
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		return "", "Storage error"
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		return "", "Write error"
	}
	return tempFilePath, ""
}
