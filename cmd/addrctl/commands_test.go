package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/validation"
	"addrcard/internal/infra/i18n"
	"addrcard/internal/infra/navigation"
	"addrcard/internal/infra/persistence/memory"
	"addrcard/internal/infra/qrcode"
	"addrcard/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T, store *memory.Store) (*cli, *bytes.Buffer) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	out := &bytes.Buffer{}

	validator, err := validation.New(validation.PhoneMinLength)
	require.NoError(t, err)
	translator, err := i18n.New("en", []string{"de"})
	require.NoError(t, err)

	navigator := navigation.NewWriter(out)
	addresses := impl.NewAddressService(impl.AddressServiceParams{
		Store:     store,
		Validator: validator,
		Logger:    logger,
	})

	return &cli{
		addresses:   addresses,
		controllers: impl.NewAddressControllerFactory(addresses, navigator, logger),
		payloads: impl.NewPayloadService(impl.PayloadServiceParams{
			Store:     store,
			Renderer:  qrcode.NewQRCodeService(256, "M"),
			Navigator: navigator,
			Logger:    logger,
		}),
		translator: translator,
		out:        out,
	}, out
}

func johnDoeEdits() map[entity.FieldName]string {
	return map[entity.FieldName]string{
		entity.FieldFirstName:   "John",
		entity.FieldLastName:    "Doe",
		entity.FieldStreet:      "123 Main",
		entity.FieldPostalCode:  "10001",
		entity.FieldCity:        "Anytown",
		entity.FieldPhoneNumber: "5555551234",
		entity.FieldEmail:       "j@d.com",
		entity.FieldDateOfBirth: "01.01.1990",
	}
}

func TestCLI_SetShowPayloadDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	c, out := newTestCLI(t, store)

	require.NoError(t, c.set(ctx, johnDoeEdits(), ""))
	assert.Contains(t, out.String(), "next: qrcode")

	out.Reset()
	require.NoError(t, c.show(ctx))
	assert.Contains(t, out.String(), "state: loaded")
	assert.Contains(t, out.String(), "version: 3")
	assert.Contains(t, out.String(), "John")

	// Editing one field keeps the others
	out.Reset()
	require.NoError(t, c.set(ctx, map[entity.FieldName]string{entity.FieldCity: "Springfield"}, ""))
	loaded, err := c.addresses.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Springfield", loaded.Fields.City)
	assert.Equal(t, "John", loaded.Fields.FirstName)

	out.Reset()
	require.NoError(t, c.payload(ctx))
	assert.Contains(t, out.String(), "status: current")
	assert.Contains(t, out.String(), `"city":"Springfield"`)

	out.Reset()
	require.NoError(t, c.delete(ctx))
	assert.Contains(t, out.String(), "deleted")

	out.Reset()
	require.NoError(t, c.show(ctx))
	assert.Equal(t, "state: absent\n", out.String())
}

func TestCLI_Set_Invalid(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	c, out := newTestCLI(t, store)

	edits := johnDoeEdits()
	edits[entity.FieldPhoneNumber] = "123"

	err := c.set(ctx, edits, "de")
	require.ErrorIs(t, err, errInvalidForm)
	assert.Contains(t, out.String(), "Telefonnummer: Zu kurz")

	_, found, err := store.Get(ctx, "address")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCLI_Set_NothingGiven(t *testing.T) {
	c, _ := newTestCLI(t, memory.New())

	assert.ErrorIs(t, c.set(context.Background(), nil, ""), errNothingToSet)
}

func TestCLI_QR(t *testing.T) {
	ctx := context.Background()
	c, out := newTestCLI(t, memory.New())
	output := filepath.Join(t.TempDir(), "qr.png")

	err := c.qr(ctx, output, 0, "")
	require.ErrorIs(t, err, errNoRenderable)
	assert.Contains(t, out.String(), "No address has been entered yet.")
	assert.Contains(t, out.String(), "next: address")

	require.NoError(t, c.set(ctx, johnDoeEdits(), ""))

	out.Reset()
	require.NoError(t, c.qr(ctx, output, 128, ""))
	assert.Contains(t, out.String(), "wrote "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestCLI_QR_Outdated(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, "address", []byte(`{"firstName":"John","version":1}`)))
	c, out := newTestCLI(t, store)

	err := c.qr(ctx, filepath.Join(t.TempDir(), "qr.png"), 0, "de")
	require.ErrorIs(t, err, errNoRenderable)
	assert.Contains(t, out.String(), "Deine gespeicherte Adresse ist veraltet.")
}

func TestCLI_Form(t *testing.T) {
	c, out := newTestCLI(t, memory.New())

	require.NoError(t, c.form("de"))
	assert.Contains(t, out.String(), "locale: de (available: en, de)")
	assert.Contains(t, out.String(), "Vorname")
	assert.Contains(t, out.String(), "Speichern | Daten löschen")
}

func TestSetFlags_Edits(t *testing.T) {
	flags := newSetFlags()
	require.NoError(t, flags.cmd.Parse([]string{"-firstName", "Jane", "-email", "", "-lang", "de"}))

	assert.Equal(t, map[entity.FieldName]string{
		entity.FieldFirstName: "Jane",
		entity.FieldEmail:     "",
	}, flags.edits())
	assert.Equal(t, "de", *flags.lang)
}

func TestRunSubcommand_Unknown(t *testing.T) {
	assert.Error(t, runSubcommand(context.Background(), "frobnicate", nil))
}
