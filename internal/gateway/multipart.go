package gateway

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// formFile is one file part of a multipart body.
type formFile struct {
	field string
	path  string
}

// writeMultipart streams files and plain fields into w and closes the writer.
func writeMultipart(w *multipart.Writer, files []formFile, fields map[string]string) error {
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("could not write field %s: %w", name, err)
		}
	}
	for _, f := range files {
		if err := writeFilePart(w, f); err != nil {
			return err
		}
	}
	return w.Close()
}

func writeFilePart(w *multipart.Writer, f formFile) error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	defer file.Close()

	name := filepath.Base(f.path)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, name))
	h.Set("Content-Type", contentType(name))
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("could not create part for %s: %w", name, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("could not stream %s: %w", name, err)
	}
	return nil
}

// contentType guesses by extension. The ticket backend discards parts that
// are not image/jpeg or image/png, so those two are pinned.
func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".csv":
		return "text/csv"
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
