package statics

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

//go:embed www/*
var www embed.FS

// ServeStatics serves the embedded front-end, or staticsDir when it is set.
// index.html is rendered as a template so the page calls /<resource>.
func ServeStatics(staticsDir, resource string) http.Handler {
	var files fs.FS
	if staticsDir != "" {
		files = os.DirFS(staticsDir)
	} else {
		sub, err := fs.Sub(www, "www")
		if err != nil {
			panic(err)
		}
		files = sub
	}

	h := &handler{
		files:    http.FileServer(http.FS(files)),
		resource: strings.Trim(resource, "/"),
	}

	index, err := template.ParseFS(files, "index.html")
	if err == nil {
		h.index = index
	} else if staticsDir == "" {
		panic(err)
	}

	return h
}

type handler struct {
	files    http.Handler
	index    *template.Template
	resource string
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.index == nil || (r.URL.Path != "/" && r.URL.Path != "/index.html") {
		h.files.ServeHTTP(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.index.Execute(w, struct{ Resource string }{h.resource})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
