// Package translate formats user-facing messages for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("uvm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage selects the message language from a BCP 47 tag.
func SetLanguage(lang string) (err error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return
	}

	printer = message.NewPrinter(tag)
	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// errorMessage is an error whose text is translated each time it is formatted,
// so a language selected after package initialisation still applies.
type errorMessage struct {
	key string
}

func (m *errorMessage) Error() string {
	return From(m.key)
}

// Error returns a sentinel error with an en-US message text.
// Each call returns a distinct error.
func Error(key string) error {
	return &errorMessage{key: key}
}
