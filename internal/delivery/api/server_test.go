package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"addrcard/config"
	"addrcard/internal/delivery/api/router"
	"addrcard/internal/delivery/api/router/handler"
	"addrcard/internal/domain/repository"
	"addrcard/internal/domain/validation"
	"addrcard/internal/errors"
	"addrcard/internal/infra/i18n"
	"addrcard/internal/infra/metrics"
	"addrcard/internal/infra/navigation"
	"addrcard/internal/infra/persistence/memory"
	"addrcard/internal/infra/qrcode"
	mockrepository "addrcard/internal/mocks/repository"
	"addrcard/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const johnDoeBody = `{"firstName":"John","lastName":"Doe","street":"123 Main","postalCode":"10001","city":"Anytown","phoneNumber":"5555551234","email":"j@d.com","dateOfBirth":"01.01.1990"}`

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID  string `json:"request_id"`
		NextScreen string `json:"next_screen"`
	} `json:"meta"`
}

func newTestServer(t *testing.T, store repository.RecordStore) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.Env.Debug = true
	cfg.HTTP.MaxRequestBodySize = "16KB"

	validator, err := validation.New(validation.PhoneMinLength)
	require.NoError(t, err)

	translator, err := i18n.New("en", []string{"en", "de"})
	require.NoError(t, err)

	m := metrics.New()
	navigator := navigation.New(logger)
	renderer := qrcode.NewQRCodeService(256, "M")

	addressUC := impl.NewAddressService(impl.AddressServiceParams{
		Store:     store,
		Validator: validator,
		Metrics:   m,
		Config:    cfg,
		Logger:    logger,
	})
	payloadUC := impl.NewPayloadService(impl.PayloadServiceParams{
		Store:     store,
		Renderer:  renderer,
		Navigator: navigator,
		Metrics:   m,
		Config:    cfg,
		Logger:    logger,
	})

	srv, err := newAPIServer(cfg, logger, router.RouterParams{
		AddressHandler: handler.NewAddressHandler(handler.AddressHandlerParams{
			AddressUC:   addressUC,
			Controllers: impl.NewAddressControllerFactory(addressUC, navigator, logger),
			Translator:  translator,
			Logger:      logger,
		}),
		QRCodeHandler: handler.NewQRCodeHandler(handler.QRCodeHandlerParams{
			PayloadUC:  payloadUC,
			Renderer:   renderer,
			Translator: translator,
			Logger:     logger,
		}),
		Metrics: m,
	})
	require.NoError(t, err)

	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func TestServer_Health(t *testing.T) {
	h := newTestServer(t, memory.New())

	rec := do(t, h, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_RequestIDIsEchoed(t *testing.T) {
	h := newTestServer(t, memory.New())

	rec := do(t, h, http.MethodGet, "/api/v1/address", "", map[string]string{"X-Request-ID": "req-42"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-42", decode(t, rec).Meta.RequestID)
}

func TestServer_QRCodeWithoutAddress(t *testing.T) {
	tests := []struct {
		name           string
		acceptLanguage string
		wantMessage    string
		wantAction     string
	}{
		{"English", "", "No address has been entered yet.", "Enter address"},
		{"German", "de-DE,de;q=0.9", "Es wurde noch keine Adresse eingegeben.", "Adresse eingeben"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, memory.New())

			rec := do(t, h, http.MethodGet, "/api/v1/qrcode", "", map[string]string{"Accept-Language": tt.acceptLanguage})
			require.Equal(t, http.StatusNotFound, rec.Code)

			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, "ADDRESS_NOT_FOUND", env.Error.Code)
			assert.Equal(t, tt.wantMessage, env.Error.Message)
			assert.Equal(t, "address", env.Meta.NextScreen)

			var details handler.ReentryDetails
			require.NoError(t, json.Unmarshal(env.Error.Details, &details))
			assert.Equal(t, "absent", details.Status)
			assert.Equal(t, tt.wantAction, details.Action)
		})
	}
}

func TestServer_SaveThenRenderQRCode(t *testing.T) {
	store := memory.New()
	h := newTestServer(t, store)

	rec := do(t, h, http.MethodPut, "/api/v1/address", johnDoeBody, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode(t, rec)
	assert.Equal(t, "qrcode", env.Meta.NextScreen)

	var saved handler.AddressResponse
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, "loaded", saved.State)
	assert.Equal(t, "John", saved.Fields.FirstName)
	require.NotNil(t, saved.StoredVersion)
	assert.Equal(t, 3, *saved.StoredVersion)

	raw, found, err := store.Get(context.Background(), "address")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, string(raw), `"version":3`)

	rec = do(t, h, http.MethodGet, "/api/v1/qrcode?size=128", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, rec.Body.Bytes()[:4])

	rec = do(t, h, http.MethodGet, "/api/v1/qrcode/payload", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload handler.PayloadResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &payload))
	assert.Equal(t, "current", string(payload.Status))
	assert.Equal(t, string(raw), payload.Payload)
	assert.Equal(t, 256, payload.DefaultSize)

	rec = do(t, h, http.MethodGet, "/api/v1/address", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var loaded handler.AddressResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &loaded))
	assert.Equal(t, "loaded", loaded.State)
	assert.False(t, loaded.Outdated)
	assert.Equal(t, "Doe", loaded.Fields.LastName)
}

func TestServer_PutAddress_ValidationFailed(t *testing.T) {
	store := memory.New()
	h := newTestServer(t, store)

	body := `{"firstName":"","lastName":"Doe","street":"123 Main","postalCode":"10001","city":"Anytown","phoneNumber":"555","email":"not-an-email","dateOfBirth":"01.01.1990"}`
	rec := do(t, h, http.MethodPut, "/api/v1/address", body, map[string]string{"Accept-Language": "de"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Empty(t, env.Meta.NextScreen)

	var details []handler.FieldErrorDetail
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))

	byField := make(map[string]handler.FieldErrorDetail, len(details))
	for _, d := range details {
		byField[string(d.Field)] = d
	}
	require.Len(t, byField, 3)
	assert.Equal(t, "Vorname", byField["firstName"].Label)
	assert.Equal(t, "Pflichtfeld", byField["firstName"].Message)
	assert.Equal(t, "Zu kurz", byField["phoneNumber"].Message)
	assert.Equal(t, "Ungültiges Format", byField["email"].Message)

	_, found, err := store.Get(context.Background(), "address")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestServer_PutAddress_BadInput(t *testing.T) {
	h := newTestServer(t, memory.New())

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"Malformed JSON", `{"firstName":`, "INVALID_INPUT"},
		{"Oversized field", `{"postalCode":"` + strings.Repeat("1", 30) + `"}`, "HTTP_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPut, "/api/v1/address", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestServer_QRCode_NonCurrentRecords(t *testing.T) {
	tests := []struct {
		name       string
		stored     string
		wantStatus int
		wantCode   string
		wantState  string
	}{
		{
			name:       "Legacy record without version",
			stored:     `{"firstName":"John","lastName":"Doe","street":"123 Main","postalCode":"10001","city":"Anytown","phoneNumber":"5555551234"}`,
			wantStatus: http.StatusConflict,
			wantCode:   "ADDRESS_OUTDATED",
			wantState:  "outdated",
		},
		{
			name:       "Older version",
			stored:     `{"firstName":"John","lastName":"Doe","street":"123 Main","postalCode":"10001","city":"Anytown","phoneNumber":"5555551234","version":2}`,
			wantStatus: http.StatusConflict,
			wantCode:   "ADDRESS_OUTDATED",
			wantState:  "outdated",
		},
		{
			name:       "Garbage",
			stored:     `not json`,
			wantStatus: http.StatusNotFound,
			wantCode:   "ADDRESS_NOT_FOUND",
			wantState:  "malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			require.NoError(t, store.Set(context.Background(), "address", []byte(tt.stored)))
			h := newTestServer(t, store)

			rec := do(t, h, http.MethodGet, "/api/v1/qrcode", "", nil)
			require.Equal(t, tt.wantStatus, rec.Code)

			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, "address", env.Meta.NextScreen)

			var details handler.ReentryDetails
			require.NoError(t, json.Unmarshal(env.Error.Details, &details))
			assert.Equal(t, tt.wantState, details.Status)
		})
	}
}

func TestServer_QRCode_InvalidSize(t *testing.T) {
	store := memory.New()
	h := newTestServer(t, store)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/v1/address", johnDoeBody, nil).Code)

	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"Not a number", "size=big", "INVALID_INPUT"},
		{"Too small", "size=10", "HTTP_ERROR"},
		{"Too large", "size=5000", "HTTP_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/v1/qrcode?"+tt.query, "", nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestServer_DeleteAddress(t *testing.T) {
	store := memory.New()
	h := newTestServer(t, store)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/v1/address", johnDoeBody, nil).Code)

	rec := do(t, h, http.MethodDelete, "/api/v1/address", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "address", env.Meta.NextScreen)
	assert.JSONEq(t, `{"state":"absent"}`, string(env.Data))

	_, found, err := store.Get(context.Background(), "address")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is not an error
	rec = do(t, h, http.MethodDelete, "/api/v1/address", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/address", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var loaded handler.AddressResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &loaded))
	assert.Equal(t, "absent", loaded.State)
	assert.Nil(t, loaded.StoredVersion)
}

func TestServer_StoreUnavailable(t *testing.T) {
	ioErr := repository.NewStoreIOError(repository.OpSet, "address", errors.New("disk full"))

	t.Run("Save", func(t *testing.T) {
		store := mockrepository.NewMockRecordStore(t)
		store.EXPECT().Get(mock.Anything, "address").Return(nil, false, nil).Maybe()
		store.EXPECT().Set(mock.Anything, "address", mock.Anything).Return(ioErr)
		h := newTestServer(t, store)

		rec := do(t, h, http.MethodPut, "/api/v1/address", johnDoeBody, nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "STORE_UNAVAILABLE", env.Error.Code)
		assert.Equal(t, "Saving failed, your data is unchanged", env.Error.Message)
		assert.Empty(t, env.Meta.NextScreen)
	})

	t.Run("Delete", func(t *testing.T) {
		store := mockrepository.NewMockRecordStore(t)
		store.EXPECT().Remove(mock.Anything, "address").
			Return(repository.NewStoreIOError(repository.OpRemove, "address", errors.New("disk gone")))
		h := newTestServer(t, store)

		rec := do(t, h, http.MethodDelete, "/api/v1/address", "", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "STORE_UNAVAILABLE", env.Error.Code)
		assert.Equal(t, "Deleting failed, the stored data may still exist", env.Error.Message)
	})

	t.Run("Read", func(t *testing.T) {
		store := mockrepository.NewMockRecordStore(t)
		store.EXPECT().Get(mock.Anything, "address").
			Return(nil, false, repository.NewStoreIOError(repository.OpGet, "address", errors.New("io timeout")))
		h := newTestServer(t, store)

		rec := do(t, h, http.MethodGet, "/api/v1/qrcode/payload", "", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "STORE_UNAVAILABLE", env.Error.Code)
		assert.Empty(t, env.Error.Details)
	})
}

func TestServer_Form(t *testing.T) {
	h := newTestServer(t, memory.New())

	rec := do(t, h, http.MethodGet, "/api/v1/address/form", "", map[string]string{"Accept-Language": "de-AT"})
	require.Equal(t, http.StatusOK, rec.Code)

	var form handler.FormResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &form))
	assert.Equal(t, "de", form.Locale)
	assert.Equal(t, []string{"en", "de"}, form.Locales)
	assert.Equal(t, 3, form.Version)
	require.Len(t, form.Fields, 8)
	assert.Equal(t, "firstName", string(form.Fields[0].Name))
	assert.Equal(t, "Vorname", form.Fields[0].Label)
	assert.Equal(t, "Speichern", form.Actions["save"])
	assert.Equal(t, "Daten löschen", form.Actions["delete"])
}

func TestServer_Metrics(t *testing.T) {
	h := newTestServer(t, memory.New())
	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/qrcode", "", nil).Code)

	rec := do(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `addrcard_payload_resolutions_total{status="absent"} 1`)
}

func TestServer_UnknownRoute(t *testing.T) {
	h := newTestServer(t, memory.New())

	rec := do(t, h, http.MethodGet, "/api/v1/unknown", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}
