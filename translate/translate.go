// Package translate localizes the user-visible strings of the emulator.
package translate

import (
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer atomic.Pointer[message.Printer]

// hostLocales returns the host's preferred locales, falling back to en-US.
func hostLocales() (locales []string) {
	locales, err := locale.GetLocales()
	if err != nil || len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return
}

func current() (p *message.Printer) {
	p = printer.Load()
	if p == nil {
		p = message.NewPrinter(message.MatchLanguage(hostLocales()...))
		if !printer.CompareAndSwap(nil, p) {
			p = printer.Load()
		}
	}

	return
}

// SetLanguage overrides the host locale for all subsequent translations.
func SetLanguage(tag language.Tag) {
	printer.Store(message.NewPrinter(tag))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return current().Sprintf(key, args...)
}
