package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"cutline/internal/config"
	"cutline/internal/game"
	"cutline/internal/metrics"
	"cutline/internal/render"
	"cutline/internal/scenario"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	}

	var (
		scenarioPath = flag.String("scenario", "", "scenario file (.yaml or .yaml.zst)")
		tuningPath   = flag.String("tuning", "", "YAML tuning overlay (optional)")
		outPath      = flag.String("out", getEnvWithDefault("SURFACE_PATH", "surface.png"), "PNG of the final cut surface")
		metricsPath  = flag.String("metrics", os.Getenv("METRICS_TEXTFILE"), "Prometheus textfile to write (optional)")
		journalPath  = flag.String("journal", getEnvWithDefault("EVENT_LOG_PATH", "events.jsonl"), "capture journal, empty to disable")
	)
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "missing -scenario")
		os.Exit(2)
	}

	appConfig := config.Load()
	if *tuningPath != "" {
		var err error
		if appConfig, err = config.LoadTuning(*tuningPath); err != nil {
			log.Fatalf("❌ Tuning: %v", err)
		}
		log.Printf("🔧 Tuning overlay: %s", *tuningPath)
	}

	sc, err := scenario.Load(*scenarioPath, appConfig)
	if err != nil {
		log.Fatalf("❌ Scenario: %v", err)
	}
	log.Printf("🎬 Scenario %q: %d steps on %dx%d", sc.Name, len(sc.Steps), sc.Config.Grid.Width, sc.Config.Grid.Height)

	reg := prometheus.NewRegistry()
	observer := metrics.New(reg)

	var journal *game.Journal
	if *journalPath != "" {
		f, err := os.Create(*journalPath)
		if err != nil {
			log.Fatalf("❌ Journal: %v", err)
		}
		defer f.Close()
		journal = game.NewJournal(f)
		log.Printf("📝 Event log: %s", *journalPath)
	}

	sess, err := game.NewSession(sc.Config, game.SessionOptions{
		Observer: observer,
		Journal:  journal,
		Logger:   log.Default(),
	})
	if err != nil {
		log.Fatalf("❌ Session: %v", err)
	}
	log.Printf("📍 Agent spawns at %v", sess.Spawn())

	progress := rate.Sometimes{First: 3, Interval: time.Second}
	start := time.Now()
	sum := scenario.Play(sess, sc, func(i int, res game.CaptureResult) {
		progress.Do(func() {
			log.Printf("📊 Step %d/%d: %s, coverage %.2f%%", i+1, len(sc.Steps), res.Outcome, res.Coverage)
		})
	})

	log.Printf("🏁 Played %d/%d steps in %v: %d captures, %d cells, score %d, state %s",
		sum.Steps, len(sc.Steps), time.Since(start).Round(time.Millisecond),
		sum.Captures, sum.Cut, sess.Score(), sum.State)
	if sum.Hits > 0 || sum.Relocated > 0 {
		log.Printf("👾 Trail hits: %d, hostiles respawned: %d", sum.Hits, sum.Relocated)
	}

	if err := journal.Err(); err != nil {
		log.Printf("⚠️ Journal incomplete: %v", err)
	}

	caption := fmt.Sprintf("Level %d  Lives %d  Score %d", sess.Level(), sess.Lives(), sess.Score())
	overlay := render.Overlay{Hostiles: sum.Hostiles, Caption: caption}
	if err := render.SavePNG(*outPath, sess.Engine().View(), overlay, sc.Config.Render); err != nil {
		log.Printf("⚠️ Surface not saved: %v", err)
	} else {
		log.Printf("🖼️ Surface: %s", *outPath)
	}

	if *metricsPath != "" {
		if err := metrics.WriteTextfile(*metricsPath, reg); err != nil {
			log.Printf("⚠️ %v", err)
		} else {
			log.Printf("📈 Metrics: %s", *metricsPath)
		}
	}
}

func getEnvWithDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
