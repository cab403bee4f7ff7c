package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/Fazeelit/mohafizbackend/config"
	"github.com/Fazeelit/mohafizbackend/internal/storage"
)

func testConfig() config.Config {
	return config.Config{
		MongoURI:      "mongodb://unused",
		MongoDB:       "test",
		MongoTimeout:  time.Second,
		MediaTimeout:  time.Minute,
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		JWTAlgorithm:  "HS256",
		JWTIssuer:     "mohafiz-backend",
		JWTAudience:   "mohafiz-clients",
		UserTokenTTL:  7 * 24 * time.Hour,
		AdminTokenTTL: 24 * time.Hour,
		BcryptCost:    4,
		CORSOrigins:   []string{"http://localhost:3000"},
		BodyLimitMB:   20,
	}
}

type harness struct {
	t     *testing.T
	app   *fiber.App
	media *storage.Memory
}

func newHarness(t *testing.T, opts ...func(*Options)) *harness {
	t.Helper()
	media := storage.NewMemory("https://cdn.example")
	o := Options{
		Config: testConfig(),
		Stores: MemoryStores(),
		Media:  media,
	}
	for _, fn := range opts {
		fn(&o)
	}
	app, err := New(o)
	require.NoError(t, err)
	return &harness{t: t, app: app, media: media}
}

type filePart struct {
	field, name, contentType string
	size                     int
}

func (h *harness) send(req *http.Request, token string) (int, map[string]any) {
	h.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func (h *harness) json(method, path, token string, payload any) (int, map[string]any) {
	h.t.Helper()
	var r io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(h.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return h.send(req, token)
}

func (h *harness) multipart(method, path, token string, fields map[string]string, files ...filePart) (int, map[string]any) {
	h.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(h.t, w.WriteField(k, v))
	}
	for _, f := range files {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		hdr.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(h.t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), f.size))
		require.NoError(h.t, err)
	}
	require.NoError(h.t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return h.send(req, token)
}

func data(body map[string]any) map[string]any {
	d, _ := body["data"].(map[string]any)
	return d
}

// login signs up (if needed) and logs in, returning the token.
func (h *harness) login(role, email, password string) string {
	h.t.Helper()
	signup, login := "/api/users/signup", "/api/users/login"
	if role == "admin" {
		signup, login = "/api/admins/signupAdmin", "/api/admins/loginAdmin"
	}
	h.json(fiber.MethodPost, signup, "", map[string]string{"username": "someone", "email": email, "password": password})
	status, body := h.json(fiber.MethodPost, login, "", map[string]string{"email": email, "password": password})
	require.Equal(h.t, fiber.StatusOK, status, body)
	token, _ := data(body)["token"].(string)
	require.NotEmpty(h.t, token)
	return token
}

func TestSignUp_CreatesAccountWithoutPassword(t *testing.T) {
	h := newHarness(t)

	status, body := h.json(fiber.MethodPost, "/api/users/signup", "",
		map[string]string{"username": "Ali", "email": "Ali@Example.com", "password": "secret123"})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "User created successfully", body["message"])

	acc := data(body)
	assert.Equal(t, "ali@example.com", acc["email"])
	assert.Equal(t, "user", acc["role"])
	assert.NotContains(t, acc, "password")

	status, body = h.json(fiber.MethodPost, "/api/users/signup", "",
		map[string]string{"username": "Ali", "email": "ali@example.com", "password": "other"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Email already exists", body["message"])
}

func TestSignUp_ValidationErrorsAreListed(t *testing.T) {
	h := newHarness(t)

	status, body := h.json(fiber.MethodPost, "/api/users/signup", "", map[string]string{"email": "nope"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation error", body["message"])
	assert.NotEmpty(t, body["error"])
}

func TestSignUp_MalformedBody(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/users/signup", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	status, body := h.send(req, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", body["message"])
}

func TestLogin_TokenCarriesRole(t *testing.T) {
	h := newHarness(t)
	token := h.login("user", "u@x.com", "secret123")

	status, body := h.json(fiber.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "u@x.com", data(body)["email"])

	// a user token cannot reach admin-only routes
	status, body = h.json(fiber.MethodGet, "/api/users", token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Access denied. Admins only.", body["message"])
}

func TestLogin_SameAnswerForUnknownEmailAndWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.login("user", "u@x.com", "secret123")

	s1, b1 := h.json(fiber.MethodPost, "/api/users/login", "", map[string]string{"email": "ghost@x.com", "password": "secret123"})
	s2, b2 := h.json(fiber.MethodPost, "/api/users/login", "", map[string]string{"email": "u@x.com", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, "Invalid email or password", b1["message"])
}

func TestLogin_RolesAreSeparate(t *testing.T) {
	h := newHarness(t)
	h.login("user", "same@x.com", "secret123")

	status, _ := h.json(fiber.MethodPost, "/api/admins/loginAdmin", "", map[string]string{"email": "same@x.com", "password": "secret123"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestResetPassword(t *testing.T) {
	h := newHarness(t)
	h.login("user", "u@x.com", "secret123")

	tests := []struct {
		name    string
		req     map[string]string
		status  int
		message string
	}{
		{"mismatch", map[string]string{"email": "u@x.com", "oldPassword": "secret123", "newPassword": "a1", "confirmPassword": "a2"},
			fiber.StatusBadRequest, "New password and confirm password do not match"},
		{"unknown email", map[string]string{"email": "no@x.com", "oldPassword": "secret123", "newPassword": "a1", "confirmPassword": "a1"},
			fiber.StatusNotFound, "User not found with this email"},
		{"wrong old", map[string]string{"email": "u@x.com", "oldPassword": "nope", "newPassword": "a1", "confirmPassword": "a1"},
			fiber.StatusUnauthorized, "Old password is incorrect"},
		{"same as old", map[string]string{"email": "u@x.com", "oldPassword": "secret123", "newPassword": "secret123", "confirmPassword": "secret123"},
			fiber.StatusBadRequest, "New password must be different from the old password"},
		{"ok", map[string]string{"email": "u@x.com", "oldPassword": "secret123", "newPassword": "fresh456", "confirmPassword": "fresh456"},
			fiber.StatusOK, "Password changed successfully"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := h.json(fiber.MethodPut, "/api/users/resetPassword", "", tc.req)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body["message"])
		})
	}

	status, _ := h.json(fiber.MethodPost, "/api/users/login", "", map[string]string{"email": "u@x.com", "password": "fresh456"})
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = h.json(fiber.MethodPost, "/api/users/login", "", map[string]string{"email": "u@x.com", "password": "secret123"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminSignupKey(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.Config.AdminSignupKey = "let-me-in" })
	payload := map[string]string{"username": "root", "email": "a@x.com", "password": "secret123"}

	status, body := h.json(fiber.MethodPost, "/api/admins/signupAdmin", "", payload)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Invalid admin signup key", body["message"])

	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(fiber.MethodPost, "/api/admins/signupAdmin", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Signup-Key", "let-me-in")
	status, _ = h.send(req, "")
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestAccountManagement(t *testing.T) {
	h := newHarness(t)
	admin := h.login("admin", "a@x.com", "secret123")
	h.login("user", "u@x.com", "secret123")

	status, body := h.json(fiber.MethodGet, "/api/users", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "User not authenticated", body["message"])

	status, body = h.json(fiber.MethodGet, "/api/users", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])
	users := body["data"].([]any)
	id := users[0].(map[string]any)["id"].(string)

	status, body = h.json(fiber.MethodPut, "/api/users/updateUser/"+id, admin, map[string]string{"address": "Lahore", "role": "admin"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Lahore", data(body)["address"])
	assert.Equal(t, "user", data(body)["role"])

	status, body = h.json(fiber.MethodDelete, "/api/users/not-an-id", admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid ID", body["message"])

	status, _ = h.json(fiber.MethodDelete, "/api/users/"+id, admin, nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = h.json(fiber.MethodDelete, "/api/users/"+id, admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestInvalidToken(t *testing.T) {
	h := newHarness(t)

	status, body := h.json(fiber.MethodGet, "/api/users/me", "garbage", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestEmptyListsReturnArrays(t *testing.T) {
	h := newHarness(t)
	admin := h.login("admin", "a@x.com", "secret123")

	for _, path := range []string{"/api/books", "/api/news", "/api/emergencies", "/api/bookings", "/api/reports", "/api/helpline", "/api/videos"} {
		status, body := h.json(fiber.MethodGet, path, admin, nil)
		require.Equal(t, fiber.StatusOK, status, path)
		assert.Equal(t, []any{}, body["data"], path)
		assert.EqualValues(t, 0, body["total"], path)
	}
}

func TestBookUploadAndDownload(t *testing.T) {
	h := newHarness(t)
	admin := h.login("admin", "a@x.com", "secret123")
	fields := map[string]string{"title": "Safety", "author": "A", "category": "kids", "language": "urdu", "status": "bogus"}

	status, body := h.multipart(fiber.MethodPost, "/api/books/uploadBook", admin, fields,
		filePart{field: "file", name: "book.png", contentType: "image/png", size: 10})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Only PDF files are allowed", body["message"])

	status, body = h.multipart(fiber.MethodPost, "/api/books/uploadBook", admin, fields,
		filePart{field: "file", name: "book.pdf", contentType: "application/pdf", size: 10})
	require.Equal(t, fiber.StatusCreated, status, body)
	book := data(body)
	assert.Equal(t, "available", book["status"])
	assert.True(t, strings.HasPrefix(book["fileUrl"].(string), "https://cdn.example/books/"))
	assert.NotEmpty(t, book["createdBy"])
	assert.Equal(t, 1, h.media.Len())

	id := book["id"].(string)
	for i := 1; i <= 2; i++ {
		status, body = h.json(fiber.MethodGet, "/api/books/download/"+id, "", nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, i, data(body)["downloads"])
	}

	status, _ = h.json(fiber.MethodDelete, "/api/books/deleteBook/"+id, admin, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0, h.media.Len())
}

func TestUploadWithoutStorage(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.Media = storage.Disabled{} })
	admin := h.login("admin", "a@x.com", "secret123")

	status, body := h.multipart(fiber.MethodPost, "/api/books/uploadBook", admin,
		map[string]string{"title": "T", "author": "A", "category": "c", "language": "l"},
		filePart{field: "file", name: "book.pdf", contentType: "application/pdf", size: 10})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "Media storage is not configured", body["message"])
}

// slowUploader takes delay per upload and gives up when ctx ends first.
type slowUploader struct {
	*storage.Memory
	delay time.Duration
}

func (u slowUploader) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (storage.Object, error) {
	select {
	case <-time.After(u.delay):
	case <-ctx.Done():
		return storage.Object{}, ctx.Err()
	}
	return u.Memory.Upload(ctx, folder, filename, contentType, body, size)
}

func TestUploadOutlivesStoreTimeout(t *testing.T) {
	h := newHarness(t, func(o *Options) {
		o.Config.MongoTimeout = 200 * time.Millisecond
		o.Media = slowUploader{Memory: storage.NewMemory("https://cdn.example"), delay: 400 * time.Millisecond}
	})
	admin := h.login("admin", "a@x.com", "secret123")

	status, body := h.multipart(fiber.MethodPost, "/api/books/uploadBook", admin,
		map[string]string{"title": "T", "author": "A", "category": "c", "language": "l"},
		filePart{field: "file", name: "book.pdf", contentType: "application/pdf", size: 1024})
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.True(t, strings.HasPrefix(data(body)["fileUrl"].(string), "https://cdn.example/books/"))
}

func TestUploadStopsAtMediaTimeout(t *testing.T) {
	h := newHarness(t, func(o *Options) {
		o.Config.MediaTimeout = 100 * time.Millisecond
		o.Media = slowUploader{Memory: storage.NewMemory("https://cdn.example"), delay: time.Second}
	})
	admin := h.login("admin", "a@x.com", "secret123")

	status, _ := h.multipart(fiber.MethodPost, "/api/books/uploadBook", admin,
		map[string]string{"title": "T", "author": "A", "category": "c", "language": "l"},
		filePart{field: "file", name: "book.pdf", contentType: "application/pdf", size: 1024})
	assert.Equal(t, fiber.StatusInternalServerError, status)

	status, body := h.json(fiber.MethodGet, "/api/books", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 0, body["total"])
}

func TestReportSubmitAndTrack(t *testing.T) {
	h := newHarness(t)
	admin := h.login("admin", "a@x.com", "secret123")

	status, body := h.multipart(fiber.MethodPost, "/api/reports/createReport", "", map[string]string{
		"complaintType": "abuse",
		"anonymous":     "true",
		"name":          "Reporter",
		"phone":         "03001234567",
		"victimName":    "V",
		"victimAge":     "9",
		"address":       "Street 1",
		"district":      "Lahore",
		"description":   "details",
	}, filePart{field: "files", name: "a.jpg", contentType: "image/jpeg", size: 10})
	require.Equal(t, fiber.StatusCreated, status, body)
	report := data(body)
	assert.NotContains(t, report, "name")
	assert.NotContains(t, report, "phone")
	assert.Len(t, report["files"], 1)
	trackingID := report["trackingId"].(string)
	assert.Regexp(t, `^RPT-[0-9A-F]{8}$`, trackingID)

	status, body = h.json(fiber.MethodGet, "/api/reports/track/"+trackingID, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]any{"trackingId": trackingID, "status": "Pending"}, data(body))

	status, _ = h.json(fiber.MethodPut, "/api/reports/updateReport/"+report["id"].(string), admin, map[string]string{"status": "Closed"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, body = h.json(fiber.MethodPut, "/api/reports/updateReport/"+report["id"].(string), admin, map[string]string{"status": "Resolved"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Resolved", data(body)["status"])

	status, _ = h.json(fiber.MethodGet, "/api/reports/track/RPT-00000000", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestBookingDuplicateCNIC(t *testing.T) {
	h := newHarness(t)
	booking := map[string]string{
		"name": "A", "fname": "B", "cnic": "35202-1234567-1", "phone": "03001234567",
		"whatsapp": "03001234567", "qualification": "BA", "service": "Emergency Helpline",
		"address": "X", "province": "Punjab", "division": "Lahore", "district": "Lahore", "tehsil": "City",
	}

	status, body := h.json(fiber.MethodPost, "/api/bookings/createBooking", "", booking)
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "Pending", data(body)["status"])

	status, body = h.json(fiber.MethodPost, "/api/bookings/createBooking", "", booking)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Booking with this CNIC already exists", body["message"])
}

func TestEmergencyAlertRecordsReporter(t *testing.T) {
	h := newHarness(t)
	user := h.login("user", "u@x.com", "secret123")

	status, _ := h.json(fiber.MethodPost, "/api/emergencies/createAlert", "", map[string]string{"emergencyType": "fire", "fullAddress": "X"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := h.json(fiber.MethodPost, "/api/emergencies/createAlert", user, map[string]string{"emergencyType": "fire", "fullAddress": "X"})
	require.Equal(t, fiber.StatusCreated, status, body)
	alert := data(body)
	assert.Equal(t, "Unknown location", alert["location"])
	assert.NotEmpty(t, alert["reportedBy"])
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	status, body := h.json(fiber.MethodGet, "/healthz", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	down := newHarness(t, func(o *Options) {
		o.Ping = func(context.Context) error { return errors.New("no primary") }
	})
	status, body = down.json(fiber.MethodGet, "/healthz", "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "unavailable", body["status"])
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	h := newHarness(t)
	status, body := h.json(fiber.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.NotEmpty(t, body["message"])
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)
	h.json(fiber.MethodGet, "/api/books", "", nil)

	resp, err := h.app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "http_requests_total")
	assert.Contains(t, string(raw), `status="200"`)
}

func TestAPIDocsMatchRoutes(t *testing.T) {
	h := newHarness(t)
	doc, err := swag.ReadDoc()
	require.NoError(t, err)
	var spec struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	documented := 0
	for path, ops := range spec.Paths {
		if strings.HasPrefix(path, "/api/") {
			documented += len(ops)
		}
	}

	param := regexp.MustCompile(`:(\w+)`)
	routed := 0
	for _, r := range h.app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api/") || r.Method == fiber.MethodHead {
			continue
		}
		routed++
		path := param.ReplaceAllString(strings.TrimSuffix(r.Path, "/"), "{$1}")
		_, ok := spec.Paths[path][strings.ToLower(r.Method)]
		assert.True(t, ok, "%s %s is not documented", r.Method, path)
	}
	assert.Equal(t, routed, documented)
}
