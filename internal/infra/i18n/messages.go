package i18n

import (
	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/validation"
)

// Message keys shared by the HTTP and CLI renderers.
const (
	KeyIsRequired      = "Address.isRequired"
	KeyTooShort        = "Address.tooShort"
	KeyPatternMismatch = "Address.patternMismatch"
	KeySave            = "Address.save"
	KeyDeleteData      = "Address.deleteData"
	KeySaveFailed      = "Address.saveFailed"
	KeyDeleteFailed    = "Address.deleteFailed"
	KeyNoAddress       = "QRCode.noAddress"
	KeyEnterAddress    = "QRCode.enterAddress"
	KeyOutdated        = "QRCode.outdated"
)

// LabelKey returns the key of a field's label
func LabelKey(field entity.FieldName) string {
	return "Address." + string(field)
}

// PlaceholderKey returns the key of a field's placeholder
func PlaceholderKey(field entity.FieldName) string {
	return "Address." + string(field) + "Placeholder"
}

// ReasonKey returns the key describing a validation failure
func ReasonKey(reason validation.Reason) string {
	switch reason {
	case validation.ReasonTooShort:
		return KeyTooShort
	case validation.ReasonPatternMismatch:
		return KeyPatternMismatch
	default:
		return KeyIsRequired
	}
}

//nolint:gochecknoglobals
var messagesEN = map[string]string{
	LabelKey(entity.FieldFirstName):         "First name",
	PlaceholderKey(entity.FieldFirstName):   "John",
	LabelKey(entity.FieldLastName):          "Last name",
	PlaceholderKey(entity.FieldLastName):    "Doe",
	LabelKey(entity.FieldStreet):            "Street",
	PlaceholderKey(entity.FieldStreet):      "123 Main",
	LabelKey(entity.FieldPostalCode):        "Postal code",
	PlaceholderKey(entity.FieldPostalCode):  "10001",
	LabelKey(entity.FieldCity):              "City",
	PlaceholderKey(entity.FieldCity):        "St Anytown",
	LabelKey(entity.FieldPhoneNumber):       "Phone number",
	PlaceholderKey(entity.FieldPhoneNumber): "(555) 555-1234",
	LabelKey(entity.FieldEmail):             "Email",
	PlaceholderKey(entity.FieldEmail):       "john.doe@example.com",
	LabelKey(entity.FieldDateOfBirth):       "Date of birth",
	PlaceholderKey(entity.FieldDateOfBirth): "01.01.1990",
	KeyIsRequired:                           "Is required",
	KeyTooShort:                             "Is too short",
	KeyPatternMismatch:                      "Has an invalid format",
	KeySave:                                 "Save",
	KeyDeleteData:                           "Delete data",
	KeySaveFailed:                           "Saving failed, your data is unchanged",
	KeyDeleteFailed:                         "Deleting failed, the stored data may still exist",
	KeyNoAddress:                            "No address has been entered yet.",
	KeyEnterAddress:                         "Enter address",
	KeyOutdated:                             "Your saved address is outdated. Please enter it again.",
}

//nolint:gochecknoglobals
var messagesDE = map[string]string{
	LabelKey(entity.FieldFirstName):         "Vorname",
	PlaceholderKey(entity.FieldFirstName):   "Max",
	LabelKey(entity.FieldLastName):          "Nachname",
	PlaceholderKey(entity.FieldLastName):    "Mustermann",
	LabelKey(entity.FieldStreet):            "Straße",
	PlaceholderKey(entity.FieldStreet):      "Hauptstraße 1",
	LabelKey(entity.FieldPostalCode):        "Postleitzahl",
	PlaceholderKey(entity.FieldPostalCode):  "10115",
	LabelKey(entity.FieldCity):              "Ort",
	PlaceholderKey(entity.FieldCity):        "Berlin",
	LabelKey(entity.FieldPhoneNumber):       "Telefonnummer",
	PlaceholderKey(entity.FieldPhoneNumber): "030 1234567",
	LabelKey(entity.FieldEmail):             "E-Mail",
	PlaceholderKey(entity.FieldEmail):       "max@example.de",
	LabelKey(entity.FieldDateOfBirth):       "Geburtsdatum",
	PlaceholderKey(entity.FieldDateOfBirth): "01.01.1990",
	KeyIsRequired:                           "Pflichtfeld",
	KeyTooShort:                             "Zu kurz",
	KeyPatternMismatch:                      "Ungültiges Format",
	KeySave:                                 "Speichern",
	KeyDeleteData:                           "Daten löschen",
	KeySaveFailed:                           "Speichern fehlgeschlagen, deine Daten sind unverändert",
	KeyDeleteFailed:                         "Löschen fehlgeschlagen, die Daten sind eventuell noch gespeichert",
	KeyNoAddress:                            "Es wurde noch keine Adresse eingegeben.",
	KeyEnterAddress:                         "Adresse eingeben",
	KeyOutdated:                             "Deine gespeicherte Adresse ist veraltet. Bitte gib sie erneut ein.",
}
