package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/mei1161/0522-3D/config"
	"github.com/mei1161/0522-3D/renderer"
	"github.com/mei1161/0522-3D/stage"
)

func init() {
	// SDL and the Vulkan surface must stay on the main thread
	runtime.LockOSThread()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Println("Starting 3DGame")
	log.Printf("Using GoLang: [%s]", runtime.Version())
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path of the yaml configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config %q: %s", *configPath, err)
		return
	}

	core := renderer.NewRenderCore(cfg)
	defer core.Destroy()
	if err := core.Initialize(); err != nil {
		log.Printf("Initialization failed during %s: %s", stage.Of(err), err)
		return
	}
	core.Run()
}
