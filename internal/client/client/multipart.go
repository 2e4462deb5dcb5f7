package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
)

// FilePart is one file of a multipart body. Data is held in memory so the
// body can be replayed when the call is retried after a token refresh.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// FileFromPath reads path into a FilePart for the given form field.
func FileFromPath(field, path string) (FilePart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FilePart{}, fmt.Errorf("read %s: %w", path, err)
	}
	return FilePart{Field: field, FileName: filepath.Base(path), Data: data}, nil
}

// Multipart is passed as the body of Execute to send multipart/form-data
// instead of JSON.
type Multipart struct {
	Fields map[string]string
	Files  []FilePart
}

func (m *Multipart) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", err
		}
	}

	for _, f := range m.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.FileName))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
