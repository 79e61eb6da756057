package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fulldump/goconfig"

	"items-api/config"
	"items-api/controllers"
	"items-api/routes"
	"items-api/statics"
)

func main() {
	c := config.Default()
	goconfig.Read(&c)

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	// Initialize the record store
	s, err := config.OpenStore(context.Background(), &c)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	// Setup routes
	r := routes.SetupRoutes(controllers.NewItemController(s), c.Resource, statics.ServeStatics(c.Statics, c.Resource))

	srv := &http.Server{
		Addr:    c.HttpAddr,
		Handler: r,
	}

	done := make(chan struct{})
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		log.Println("Signal received", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println("ERROR:", err.Error())
		}
		if err := s.Close(ctx); err != nil {
			log.Println("ERROR:", err.Error())
		}
		close(done)
	}()

	// Start the server
	log.Println("listening on", c.HttpAddr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-done
}
