package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/ChristopherRabotin/ascent"
	kitlog "github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// This code effectively only reads the scenario file and flies the mission.

const defaultScenario = "~~unset~~"

var (
	scenario    string
	metricsAddr string
	verbose     bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "flight scenario file (TOML, YAML or JSON)")
	flag.StringVar(&metricsAddr, "metrics", "", "serve Prometheus metrics on this address (e.g. :9090)")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scn, err := ascent.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("could not load scenario: %s", err)
	}
	if verbose {
		log.Printf("[conf] planet: %s", scn.Planet)
		log.Printf("[conf] vehicle: %s", scn.Vehicle)
		log.Printf("[conf] autopilot: %s (target %.0f m)", scn.Autopilot.Mode, scn.Autopilot.TargetAltitude)
		log.Printf("[conf] time step: %s, limit: %s", scn.Step, scn.MaxDuration)
	}

	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	if !verbose {
		klog = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	}
	reg := prometheus.NewRegistry()
	mission := scn.Mission().WithLogger(klog).WithMetrics(ascent.NewMetrics(reg))

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Printf("[WARNING] metrics server stopped: %s", err)
			}
		}()
	}

	// An interrupt ends the flight cleanly, so that the files are complete.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		<-sigs
		mission.StopPropagation()
	}()

	if err := mission.Propagate(); err != nil {
		log.Fatalf("flight failed: %s", err)
	}
	summary := mission.Summary()
	log.Printf("%s: %s after %.1f s, max altitude %.3f km, inserted=%v", summary.Vehicle, summary.Outcome, summary.Duration, summary.MaxAltitude/1e3, summary.Inserted)
}
