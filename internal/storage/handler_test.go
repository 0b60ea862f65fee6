package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"menuplanner-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	f.key, f.contentType = key, contentType
	b, err := io.ReadAll(body)
	f.body = b
	return "http://cdn.test/" + key, err
}

func multipartRequest(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	w.Close()

	req := httptest.NewRequest("POST", "/api/images", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	up := &fakeUploader{}
	app := fiber.New()
	app.Post("/api/images", UploadImageHandler(up))

	resp, err := app.Test(multipartRequest(t, "Soup.PNG", "image/png", []byte("png-bytes")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if !strings.HasPrefix(up.key, "uploads/") || !strings.HasSuffix(up.key, ".png") {
		t.Fatalf("key = %q", up.key)
	}
	if body["url"] != "http://cdn.test/"+up.key {
		t.Fatalf("url = %q", body["url"])
	}
	if string(up.body) != "png-bytes" || up.contentType != "image/png" {
		t.Fatalf("uploaded %q as %q", up.body, up.contentType)
	}
}

func TestUploadImageRejects(t *testing.T) {
	app := fiber.New()
	app.Post("/api/images", UploadImageHandler(&fakeUploader{}))

	resp, _ := app.Test(multipartRequest(t, "notes.txt", "text/plain", []byte("hi")))
	if resp.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Fatalf("text upload status = %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("POST", "/api/images", nil))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("missing file status = %d", resp.StatusCode)
	}
}

func TestUploadImageWithoutStorage(t *testing.T) {
	app := fiber.New()
	app.Post("/api/images", UploadImageHandler(nil))

	resp, _ := app.Test(multipartRequest(t, "a.png", "image/png", []byte("x")))
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestObjectKeyFallsBackToContentType(t *testing.T) {
	k := ObjectKey("blob", "image/jpeg")
	if !strings.HasPrefix(k, "uploads/") || !strings.HasSuffix(k, ".jpg") {
		t.Fatalf("key = %q", k)
	}
	if ObjectKey("a.png", "image/png") == ObjectKey("a.png", "image/png") {
		t.Fatal("keys must be unique")
	}
}

func TestPublicBaseURL(t *testing.T) {
	cases := []struct {
		cfg  config.Config
		want string
	}{
		{config.Config{S3PublicURL: "https://img.example.com", S3Bucket: "b"}, "https://img.example.com"},
		{config.Config{S3Endpoint: "http://localhost:9000/", S3Bucket: "menu"}, "http://localhost:9000/menu"},
		{config.Config{S3Bucket: "menu", S3Region: "eu-west-1"}, "https://menu.s3.eu-west-1.amazonaws.com"},
	}
	for _, tc := range cases {
		if got := PublicBaseURL(&tc.cfg); got != tc.want {
			t.Errorf("PublicBaseURL = %q, want %q", got, tc.want)
		}
	}
}
