//go:build js && wasm

// Command folio-wasm is the in-browser viewer. Build it with
//
//	GOOS=js GOARCH=wasm go build -o wasm/folio.wasm ./cmd/folio-wasm
//
// and copy $(go env GOROOT)/lib/wasm/wasm_exec.js next to it.
package main

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Zachkp/folio/internal/dom/jsdom"
	"github.com/Zachkp/folio/internal/feed"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/render"
)

func main() {
	log := logging.Console(zapcore.InfoLevel)
	doc := jsdom.New()

	src, err := feed.NewHTTPSource(doc.Location(), nil)
	if err != nil {
		log.Error("viewer disabled", zap.Error(err))
		return
	}

	doc.OnReady(func() {
		opts := page.Options{
			Source: src,
			Icons:  jsdom.Lucide{},
			Policy: render.DefaultPolicy(),
			Logger: log,
		}
		opts.FromDocument(doc)
		page.New(doc, opts).Start(context.Background())
	})

	// Event handlers run on this program; keep it alive.
	select {}
}
