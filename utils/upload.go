// File: /utils/upload.go
package utils

import (
	"fmt"
	"log"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// SaveUpload writes a multipart file under <uploadRoot>/<subdir> with a
// collision-resistant name (<base>-<unixmilli>-<rand><ext>) and returns the
// public path clients use to fetch it ("/uploads/<subdir>/<name>").
//
// Only image extensions are accepted. Clients expecting stable URLs rely on
// this path format.
func SaveUpload(c *gin.Context, file *multipart.FileHeader, uploadRoot, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	dir := filepath.Join(uploadRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	if base == "" {
		base = "file"
	}
	name := fmt.Sprintf("%s-%d-%d%s", base, time.Now().UnixMilli(), rand.Intn(1_000_000), ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return "/uploads/" + subdir + "/" + name, nil
}

// RemoveUpload deletes a previously saved upload given its public path.
// Used to avoid orphaned files when the database write after an upload
// fails, and when an entity's image is replaced or deleted.
func RemoveUpload(uploadRoot, publicPath string) {
	rel, ok := strings.CutPrefix(publicPath, "/uploads/")
	if !ok {
		return
	}
	if err := os.Remove(filepath.Join(uploadRoot, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		// Best effort: a leftover file is not worth failing the request.
		log.Printf("Warning: could not remove upload %s: %v", publicPath, err)
	}
}
