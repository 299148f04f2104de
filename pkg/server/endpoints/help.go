package endpoints

import (
	"bytes"
	"log"
	"net/http"
	"sync"

	_ "embed"

	"github.com/yuin/goldmark"

	"github.com/modeladmin/madmin/pkg/server"
)

//go:embed HELP.md
var helpSource []byte

// HelpPage serves the rendered help document. The markdown is converted
// once on first request.
func HelpPage() http.HandlerFunc {
	var once sync.Once
	var body []byte
	return func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			var buf bytes.Buffer
			if err := goldmark.New().Convert(helpSource, &buf); err != nil {
				log.Printf("render help: %v", err)
				buf.Reset()
				buf.WriteString("<p>Help is unavailable.</p>")
			}
			body = buf.Bytes()
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}
}

// RegisterHelp wires the help route.
func RegisterHelp(s *server.Server) {
	s.Router.HandleFunc("/help", HelpPage()).Methods("GET")
}
