// FILE: lixenwraith/settings/example/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/settings"
)

// AppSettings is the typed target for the final Scan.
type AppSettings struct {
	Host    string   `setting:"host"`
	Port    int64    `setting:"port"`
	Debug   bool     `setting:"debug"`
	Tags    []string `setting:"tags"`
	Timeout string   `setting:"timeout"`
}

func main() {
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("TAGS")
		os.Remove("snapshot.toml")
	}()

	log.Println("➡️  Declaring the schema...")
	schema := settings.NewSchema()
	schema.Register("host", "localhost")
	schema.Register("port", 8080)
	schema.Register("debug", false)
	schema.RegisterTyped("tags", settings.List(), []any{})
	schema.RegisterType("timeout", settings.Optional(settings.Duration()))

	cfg := settings.New(schema)

	log.Println("➡️  Environment beats defaults...")
	os.Setenv("PORT", "9000")
	os.Setenv("TAGS", `["alpha", "beta"]`)

	port, _ := cfg.Int64("port")
	tags, _ := cfg.Strings("tags")
	fmt.Printf("port=%d tags=%v\n", port, tags)

	log.Println("➡️  Command line beats environment...")
	if err := cfg.ParseCommandLine([]string{"--port", "7000", "--debug"}); err != nil {
		log.Fatalf("❌ command line: %v", err)
	}
	port, _ = cfg.Int64("port")
	debug, _ := cfg.Bool("debug")
	fmt.Printf("port=%d debug=%v\n", port, debug)

	log.Println("➡️  Frozen snapshot survives environment changes...")
	snap, err := cfg.Freeze()
	if err != nil {
		log.Fatalf("❌ freeze: %v", err)
	}
	os.Setenv("PORT", "1")
	frozen, _ := snap.Get("port")
	live, _ := cfg.Int64("port") // still 7000: the override wins
	fmt.Printf("frozen=%v live=%d\n", frozen, live)

	if err := snap.Save("snapshot.toml"); err != nil {
		log.Fatalf("❌ save: %v", err)
	}
	log.Println("✅ Snapshot written to snapshot.toml")

	var app AppSettings
	if err := cfg.Scan(&app); err != nil {
		log.Fatalf("❌ scan: %v", err)
	}
	fmt.Printf("scanned: %+v\n", app)

	fmt.Print(cfg.Debug())
}
