// Package translate formats user visible messages for the LR35902 core.
//
// Every error and diagnostic string in this module is built with From, so a
// message catalog registered with golang.org/x/text/message for the host
// locale is picked up without touching the callers.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const fallback = "en-US"

var (
	tag     language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("lr35902: locale: %v", err)
	}

	Use(locales...)
}

// Use selects the printer for the first supported locale in the list.
// An empty list selects en-US.
func Use(locales ...string) {
	if len(locales) == 0 {
		locales = []string{fallback}
	}

	tag = message.MatchLanguage(locales...)
	printer = message.NewPrinter(tag)
}

// Language returns the language tag the messages are formatted for.
func Language() language.Tag {
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
