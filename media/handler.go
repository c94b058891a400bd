package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/random"
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Service abstracts the uploader so tests can swap the remote host out.
type Service interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// HandleUpload accepts one multipart file, renames it to a generated
// unique name and relays it to the media host.
func HandleUpload(up Service, maxBytes int64) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return weberr.BadRequest(fmt.Errorf("parsing multipart form: %w", err))
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("reading form file: %w", err))
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExt[ext] {
			err := errors.New("unsupported file type")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		name := fmt.Sprintf("upload-%d-%s%s", time.Now().UnixMilli(), random.Upper(6), ext)

		url, err := up.Upload(ctx, name, file)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", name, err)
		}

		out := struct {
			URL string `json:"url"`
		}{url}

		return web.Respond(ctx, w, out, http.StatusCreated)
	}
}
