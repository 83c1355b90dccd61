//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"github.com/Zachkp/folio/internal/dom"
)

// Lucide refreshes icon placeholders through the page's lucide bundle.
// It is a no-op when the bundle is not loaded.
type Lucide struct{}

// Refresh implements icons.Refresher.
func (Lucide) Refresh(dom.Element) {
	l := js.Global().Get("lucide")
	if l.IsUndefined() || l.IsNull() {
		return
	}
	l.Call("createIcons")
}
