package fill

import (
	"bytes"
	"fmt"
	"mime/multipart"

	json "github.com/goccy/go-json"

	"github.com/formforge/formforge/pkg/store"
)

// Payload packages the current answers into the submission shape: attachments
// are split out as file parts, and the JSON answer slot for a file field
// carries the filename so stored responses stay meaningful without the blob.
func (s *Session) Payload() store.Submission {
	sub := store.Submission{Answers: make(map[string]any, len(s.answers))}
	for key, value := range s.answers {
		switch v := value.(type) {
		case Attachment:
			sub.Answers[key] = v.Name
			sub.Files = append(sub.Files, store.FilePart{
				Label: key,
				Name:  v.Name,
				Data:  append([]byte(nil), v.Data...),
			})
		case []string:
			sub.Answers[key] = append([]string(nil), v...)
		default:
			sub.Answers[key] = v
		}
	}
	return sub
}

// EncodeMultipart writes a submission as a multipart/form-data body: one
// "answers" part holding the answer map as JSON, then one "files" part per
// attachment. It returns the body and the content type carrying the boundary.
func EncodeMultipart(sub store.Submission) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	raw, err := json.Marshal(sub.Answers)
	if err != nil {
		return nil, "", fmt.Errorf("encode answers: %w", err)
	}
	part, err := w.CreateFormField("answers")
	if err != nil {
		return nil, "", fmt.Errorf("create answers part: %w", err)
	}
	if _, err := part.Write(raw); err != nil {
		return nil, "", fmt.Errorf("write answers part: %w", err)
	}

	for _, file := range sub.Files {
		fp, err := w.CreateFormFile("files", file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %q: %w", file.Name, err)
		}
		if _, err := fp.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write file part %q: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
