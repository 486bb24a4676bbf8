package web

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Form validation messages; the English text is the key.
const (
	msgBadQuality  = "JPG quality must be 0–100."
	msgHalfRow     = "Every filled row needs both Width and Height."
	msgNotInteger  = "Width/Height/DPI must be whole numbers."
	msgNoRows      = "Please fill in at least one row."
	msgServerError = "ERROR: %v"
)

var formCatalog = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{msgBadQuality, msgHalfRow, msgNotInteger, msgNoRows, msgServerError} {
		_ = b.SetString(language.English, key, key)
	}
	_ = b.SetString(language.German, msgBadQuality, "JPG quality muss 0–100 sein.")
	_ = b.SetString(language.German, msgHalfRow, "In jeder ausgefüllten Zeile müssen Width und Height gesetzt sein.")
	_ = b.SetString(language.German, msgNotInteger, "Width/Height/DPI müssen ganze Zahlen sein.")
	_ = b.SetString(language.German, msgNoRows, "Bitte mindestens eine Zeile ausfüllen.")
	_ = b.SetString(language.German, msgServerError, "ERROR: %v")
	return b
}()

func newPrinter(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag, message.Catalog(formCatalog))
}
