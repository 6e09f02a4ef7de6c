package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ftl/gnsscore/core/app"
	"github.com/ftl/gnsscore/core/cfg"
)

func main() {
	configuration, err := cfg.Load()
	if err != nil {
		log.Println(err)
		configuration = cfg.Static()
	}

	controller := app.New(configuration)
	err = controller.Startup()
	if err != nil {
		log.Fatal(err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case acquisition := <-controller.Acquisitions():
			log.Print(acquisition)
		case <-signals:
			controller.Shutdown()
			return
		}
	}
}
