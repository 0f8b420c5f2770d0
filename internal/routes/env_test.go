package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/daycache"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

const (
	testSecret = "segredo-de-teste"
	salonTZ    = "America/Sao_Paulo"

	// segunda-feira
	bookingDate = "2030-03-11"
)

type recordingSink struct {
	mu      sync.Mutex
	actions []string
}

func (s *recordingSink) Dispatch(ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, ev.Action)
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.local/" + key, nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

type env struct {
	t        *testing.T
	router   *gin.Engine
	repo     *memory.Repository
	broker   *notify.Broker
	sink     *recordingSink
	storage  *memStorage
	token    string
	salon    models.Salon
	calendar models.Calendar
	cut      models.Service
	color    models.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.New()
	salon := repo.AddSalon(models.Salon{
		Name:              "Studio Bela",
		Slug:              "studio-bela",
		Timezone:          salonTZ,
		MinAdvanceMinutes: 60,
	})
	cut := repo.AddService(models.Service{SalonID: salon.ID, Name: "Corte", DurationMinutes: 45})
	colorSvc := repo.AddService(models.Service{
		SalonID:         salon.ID,
		Name:            "Coloração",
		DurationMinutes: 120,
		AvailableDays:   []string{"Terça-feira", "Quarta-feira"},
	})
	cal := repo.AddCalendar(models.Calendar{SalonID: salon.ID, Name: "Ana"}, cut.ID, colorSvc.ID)
	repo.SetWorkingHours(models.WorkingHours{
		CalendarID: cal.ID,
		Weekday:    int(time.Monday),
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		Active:     true,
	})

	e := &env{
		t:        t,
		router:   gin.New(),
		repo:     repo,
		broker:   notify.NewBroker(zerolog.Nop()),
		sink:     &recordingSink{},
		storage:  &memStorage{objects: map[string][]byte{}},
		salon:    salon,
		calendar: cal,
		cut:      cut,
		color:    colorSvc,
	}

	RegisterRoutes(e.router, Deps{
		Config: &config.Config{
			JWTSecret:       testSecret,
			SlotStepMinutes: 30,
			S3:              config.S3Config{PresignTTL: time.Minute},
		},
		Logger:      zerolog.Nop(),
		Repo:        repo,
		Attachments: repo,
		Storage:     e.storage,
		Cache:       daycache.Nop{},
		Broker:      e.broker,
		Audit:       e.sink,
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     1,
		"salonId": salon.ID,
		"role":    "owner",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	e.token = token

	return e
}

func (e *env) request(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	e.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) private(method, path string, body any) *httptest.ResponseRecorder {
	return e.request(method, path, body, true)
}

func (e *env) public(method, path string, body any) *httptest.ResponseRecorder {
	return e.request(method, path, body, false)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type apiError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type appointmentBody struct {
	ID         uint      `json:"id"`
	CalendarID uint      `json:"calendar_id"`
	ServiceID  uint      `json:"service_id"`
	ClientID   uint      `json:"client_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
}

type dataOf[T any] struct {
	Data T `json:"data"`
}

type listOf[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func (e *env) newAppointment(start, end string) appointmentBody {
	e.t.Helper()

	w := e.private(http.MethodPost, "/api/me/appointments", map[string]any{
		"calendar_id":  e.calendar.ID,
		"service_id":   e.cut.ID,
		"client_name":  "Maria",
		"client_phone": "(11) 98765-4321",
		"date":         bookingDate,
		"start_time":   start,
		"end_time":     end,
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dataOf[appointmentBody]](e.t, w).Data
}

func (e *env) at(hm string) time.Time {
	loc, _ := time.LoadLocation(salonTZ)
	t, _ := time.ParseInLocation("2006-01-02 15:04", bookingDate+" "+hm, loc)
	return t
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartFile(t *testing.T, field, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
