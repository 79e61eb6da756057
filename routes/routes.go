package routes

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"

	"items-api/controllers"
)

// SetupRoutes mounts the item resource under /<resource> and falls back to
// statics for every other GET.
func SetupRoutes(c *controllers.ItemController, resource string, statics http.Handler) *mux.Router {
	base := "/" + strings.Trim(resource, "/")

	r := mux.NewRouter()
	r.Use(
		RequestID,
		AccessLog(log.New(os.Stdout, "ACCESS: ", log.LstdFlags)),
		RecoverFromPanic,
		CORS(),
	)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/healthz", Healthz).Methods("GET", "HEAD")

	// mux runs middlewares only on matched routes, so preflights need one.
	r.Methods("OPTIONS").HandlerFunc(noContent)

	r.HandleFunc(base, c.CreateItem).Methods("POST")
	r.HandleFunc(base+"/{id}", c.GetItem).Methods("GET", "HEAD")
	r.HandleFunc(base+"/{id}", c.UpdateItem).Methods("PUT")
	r.HandleFunc(base+"/{id}", c.DeleteItem).Methods("DELETE")
	r.HandleFunc(base, c.GetAllItems).Methods("GET", "HEAD")

	if statics != nil {
		r.PathPrefix("/").Handler(statics).Methods("GET", "HEAD")
	}

	return r
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"OK"}`))
}

func noContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"message":"resource not found"}`))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"message":"method not allowed"}`))
}
