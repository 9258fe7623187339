package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form is a multipart payload forwarded to the upstream unmodified. On
// update, an omitted file field means "keep the existing file".
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	key   string
	value string
}

type formFile struct {
	field    string
	filename string
	reader   io.Reader
}

func NewForm() *Form {
	return &Form{}
}

// Set appends a text field. Repeated keys are kept in order.
func (f *Form) Set(key, value string) {
	f.fields = append(f.fields, formField{key: key, value: value})
}

// File appends a file field streamed from reader.
func (f *Form) File(field, filename string, reader io.Reader) {
	f.files = append(f.files, formFile{field: field, filename: filename, reader: reader})
}

// encode renders the multipart body and returns it with its content type.
func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.key, field.value); err != nil {
			return nil, "", fmt.Errorf("api: encode form field %q: %w", field.key, err)
		}
	}

	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("api: encode form file %q: %w", file.field, err)
		}
		if _, err := io.Copy(part, file.reader); err != nil {
			return nil, "", fmt.Errorf("api: copy form file %q: %w", file.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
