package mockapi

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "mulemobile/internal/log"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

type uploadHandler struct {
	mediaDir  string
	publicURL string
}

// Images stores multipart "images" files under <media>/uploads and answers
// {"imageUrls": [...]}.
func (h *uploadHandler) Images(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "No images uploaded")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return fail(c, fiber.StatusBadRequest, "No images uploaded")
	}
	dir := filepath.Join(h.mediaDir, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !imageExts[ext] {
			applog.Security(c, "mockapi.upload.rejected", map[string]any{"name": fh.Filename})
			return fail(c, fiber.StatusBadRequest, "Only image files are allowed")
		}
		name := uuid.NewString() + ext
		if err := c.SaveFile(fh, filepath.Join(dir, name)); err != nil {
			return err
		}
		urls = append(urls, strings.TrimSuffix(h.publicURL, "/")+"/media/uploads/"+name)
	}
	applog.Audit(c, "mockapi.upload.images", map[string]any{"count": len(urls)})
	return c.JSON(fiber.Map{"imageUrls": urls})
}
