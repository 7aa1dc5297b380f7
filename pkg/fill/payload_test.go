package fill

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	json "github.com/goccy/go-json"

	"github.com/formforge/formforge/pkg/model"
)

func TestPayloadSplitsAttachments(t *testing.T) {
	form := testForm()
	form.Fields = append(form.Fields, model.Field{ID: "f5", Label: "Resume", Type: model.FieldTypeFile})
	s := Begin(context.Background(), form.ID, seededStore(t, form))

	s.SetText(form.Fields[0], "Ada")
	s.Attach(form.Fields[4], "resume.pdf", []byte("pdf-bytes"))

	sub := s.Payload()
	wantAnswers := map[string]any{"Name": "Ada", "Resume": "resume.pdf"}
	if diff := cmp.Diff(wantAnswers, sub.Answers); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
	if len(sub.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(sub.Files))
	}
	file := sub.Files[0]
	if file.Label != "Resume" || file.Name != "resume.pdf" || string(file.Data) != "pdf-bytes" {
		t.Fatalf("file part = %+v", file)
	}
}

func TestEncodeMultipartRoundTrip(t *testing.T) {
	form := testForm()
	form.Fields = append(form.Fields, model.Field{ID: "f5", Label: "Resume", Type: model.FieldTypeFile})
	s := Begin(context.Background(), form.ID, seededStore(t, form))
	s.SetText(form.Fields[0], "Ada")
	s.Toggle(form.Fields[2], "B", true)
	s.Attach(form.Fields[4], "resume.pdf", []byte("pdf-bytes"))

	body, contentType, err := EncodeMultipart(s.Payload())
	if err != nil {
		t.Fatalf("EncodeMultipart: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("ParseMediaType: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("media type = %s", mediaType)
	}

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	var answersJSON []byte
	var fileNames []string
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		switch part.FormName() {
		case "answers":
			answersJSON = data
		case "files":
			fileNames = append(fileNames, part.FileName())
			if string(data) != "pdf-bytes" {
				t.Fatalf("file body = %q", data)
			}
		default:
			t.Fatalf("unexpected part %q", part.FormName())
		}
	}

	var decoded map[string]any
	if err := json.Unmarshal(answersJSON, &decoded); err != nil {
		t.Fatalf("decode answers: %v", err)
	}
	if decoded["Name"] != "Ada" || decoded["Resume"] != "resume.pdf" {
		t.Fatalf("decoded answers = %v", decoded)
	}
	if strings.Join(fileNames, ",") != "resume.pdf" {
		t.Fatalf("file names = %v", fileNames)
	}
}
