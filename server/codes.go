package server

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/vitalvas/baasdoc/i18n"
	"github.com/vitalvas/baasdoc/middleware"
	"github.com/vitalvas/baasdoc/respcode"
)

// Response codes answered by the server. Message doubles as the catalog
// key.
var (
	CodeBadRequest      = respcode.New(respcode.Client, 400, http.StatusBadRequest, "Bad request")
	CodeInvalidBody     = respcode.New(respcode.Client, "INVALID_BODY", http.StatusBadRequest, "Request body is not valid JSON")
	CodeInvalidID       = respcode.New(respcode.Client, "INVALID_ID", http.StatusBadRequest, "Identifier must be a positive integer")
	CodeValidation      = respcode.New(respcode.Client, "VALIDATION", http.StatusUnprocessableEntity, "Request failed validation")
	CodeUserNotFound    = respcode.New(respcode.Client, "USER_NOT_FOUND", http.StatusNotFound, "User not found")
	CodeTeamNotFound    = respcode.New(respcode.Client, "TEAM_NOT_FOUND", http.StatusNotFound, "Team not found")
	CodeProjectNotFound = respcode.New(respcode.Client, "PROJECT_NOT_FOUND", http.StatusNotFound, "Project not found")
	CodeEmailTaken      = respcode.New(respcode.Client, "EMAIL_TAKEN", http.StatusConflict, "Email is already registered")
	CodeTooLarge        = respcode.New(respcode.Client, 413, http.StatusRequestEntityTooLarge, "Request body is too large")
	CodeUnauthorized    = respcode.New(respcode.Auth, 401, http.StatusUnauthorized, "Missing or invalid bearer token")

	CodeUnsupportedMediaType = middleware.CodeUnsupportedMediaType
	CodeInternal             = middleware.CodeInternal
)

var translations = map[language.Tag]i18n.Messages{
	language.English: {
		"Bad request":                           "Bad request",
		"Request body is not valid JSON":        "Request body is not valid JSON",
		"Identifier must be a positive integer": "Identifier must be a positive integer",
		"Request failed validation":             "Request failed validation",
		"User not found":                        "User not found",
		"Team not found":                        "Team not found",
		"Project not found":                     "Project not found",
		"Email is already registered":           "Email is already registered",
		"Request body is too large":             "Request body is too large",
		"Missing or invalid bearer token":       "Missing or invalid bearer token",
		"Unsupported media type":                "Unsupported media type",
		"Internal error":                        "Internal error",
	},
	language.German: {
		"Bad request":                           "Ungültige Anfrage",
		"Request body is not valid JSON":        "Der Anfragetext ist kein gültiges JSON",
		"Identifier must be a positive integer": "Die Kennung muss eine positive Ganzzahl sein",
		"Request failed validation":             "Die Anfrage ist ungültig",
		"User not found":                        "Benutzer nicht gefunden",
		"Team not found":                        "Team nicht gefunden",
		"Project not found":                     "Projekt nicht gefunden",
		"Email is already registered":           "Die E-Mail-Adresse ist bereits registriert",
		"Request body is too large":             "Der Anfragetext ist zu groß",
		"Missing or invalid bearer token":       "Fehlendes oder ungültiges Bearer-Token",
		"Unsupported media type":                "Nicht unterstützter Medientyp",
		"Internal error":                        "Interner Fehler",
	},
}

// NewCatalog returns the message catalog of the server codes with def as
// the default language. def must be one of the translated languages.
func NewCatalog(def language.Tag) (*i18n.Catalog, error) {
	return i18n.New(def, translations)
}
