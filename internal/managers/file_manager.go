package managers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// FileMgr defines the interface for storing uploaded files.
type FileMgr interface {
	// SaveUpload stores the multipart file under a collision-resistant name
	// and returns the relative path the file is served from.
	SaveUpload(ctx *gin.Context, file *multipart.FileHeader) (string, error)
	// Dir returns the directory uploads are stored in.
	Dir() string
}

// FileManager stores uploads on local disk under a configured directory.
type FileManager struct {
	uploadDir string
}

// NewFileManager creates the upload directory if needed and returns a
// FileManager rooted at it.
func NewFileManager(uploadDir string) (FileMgr, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", uploadDir, err)
	}

	log.Info("Initializing file manager with upload directory ", uploadDir)
	return &FileManager{uploadDir: uploadDir}, nil
}

func (mgr *FileManager) SaveUpload(ctx *gin.Context, file *multipart.FileHeader) (string, error) {
	name := uuid.New().String() + filepath.Ext(file.Filename)
	destination := filepath.Join(mgr.uploadDir, name)

	if err := ctx.SaveUploadedFile(file, destination); err != nil {
		return "", fmt.Errorf("saving upload %s: %w", file.Filename, err)
	}

	return "/uploads/" + name, nil
}

func (mgr *FileManager) Dir() string {
	return mgr.uploadDir
}
