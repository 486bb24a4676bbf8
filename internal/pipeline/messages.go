package pipeline

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	msgDone          = "Done."
	msgNoImages      = "No supported image files found in input."
	msgFfmpegMissing = "ffmpeg not found. (Expected e.g. /opt/homebrew/bin/ffmpeg)"
	msgSipsMissing   = "sips not found (should be present on macOS)."
	msgInputMissing  = "Input folder does not exist: %s"
	msgOutputFailed  = "Cannot create output folder: %s (%v)"
	msgInputUnread   = "Cannot read input folder: %v"
	msgInvalidRun    = "Invalid run: %v"
)

var translations = map[language.Tag]map[string]string{
	language.German: {
		msgDone:          "Fertig.",
		msgNoImages:      "Keine unterstützten Bilddateien im Input gefunden.",
		msgFfmpegMissing: "ffmpeg nicht gefunden. (Erwartet z.B. /opt/homebrew/bin/ffmpeg)",
		msgSipsMissing:   "sips nicht gefunden (sollte auf macOS vorhanden sein).",
		msgInputMissing:  "Input-Ordner existiert nicht: %s",
		msgOutputFailed:  "Output-Ordner kann nicht angelegt werden: %s (%v)",
		msgInputUnread:   "Input-Ordner kann nicht gelesen werden: %v",
		msgInvalidRun:    "Ungültiger Lauf: %v",
	},
}

var messageCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{
		msgDone, msgNoImages, msgFfmpegMissing, msgSipsMissing,
		msgInputMissing, msgOutputFailed, msgInputUnread, msgInvalidRun,
	} {
		_ = b.SetString(language.English, key, key)
	}
	for tag, msgs := range translations {
		for key, msg := range msgs {
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Messages renders the informational, terminal, and configuration lines
// in one language. Per-unit OK/FAIL lines are not localized.
type Messages struct {
	p *message.Printer
}

// NewMessages returns messages for lang ("en", "de", or any BCP 47 tag;
// unknown languages fall back to English).
func NewMessages(lang string) *Messages {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Messages{p: message.NewPrinter(tag, message.Catalog(messageCatalog))}
}

func (m *Messages) Done() string          { return m.p.Sprintf(msgDone) }
func (m *Messages) NoImages() string      { return m.p.Sprintf(msgNoImages) }
func (m *Messages) FfmpegMissing() string { return m.p.Sprintf(msgFfmpegMissing) }
func (m *Messages) SipsMissing() string   { return m.p.Sprintf(msgSipsMissing) }

func (m *Messages) InputMissing(dir string) string {
	return m.p.Sprintf(msgInputMissing, dir)
}

func (m *Messages) OutputFailed(dir string, err error) string {
	return m.p.Sprintf(msgOutputFailed, dir, err)
}

func (m *Messages) InputUnreadable(err error) string {
	return m.p.Sprintf(msgInputUnread, err)
}

func (m *Messages) InvalidRun(err error) string {
	return m.p.Sprintf(msgInvalidRun, err)
}
