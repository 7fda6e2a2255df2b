// quadcheck runs the intermediate-code scenarios against their golden dumps.
// Each scenario threads one small program through the quad builder the way
// the AST traversal would; the normalized dump must match the recorded
// golden file byte for byte.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/lyra-lang/lyc/pkg/util"
)

type SuiteEntry struct {
	Name   string `yaml:"name"`
	Golden string `yaml:"golden"`
	Skip   bool   `yaml:"skip,omitempty"`
	Reason string `yaml:"reason,omitempty"`
}

type Suite struct {
	Scenarios []SuiteEntry `yaml:"scenarios"`
}

type ScenarioResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"` // PASS, FAIL, SKIP, ERROR
	Message    string `json:"message,omitempty"`
	Diff       string `json:"diff,omitempty"`
	GoldenHash string `json:"golden_hash,omitempty"`
}

var (
	suitePath  = flag.String("suite", "testdata/suite.yaml", "Suite manifest listing scenarios and golden files.")
	update     = flag.Bool("update", false, "Rewrite golden files from the current output.")
	outputJSON = flag.String("output", ".quadcheck_results.json", "Output file for the JSON report.")
	jobs       = flag.Int("j", 4, "Number of parallel jobs.")
	verbose    = flag.Bool("v", false, "Dump every scenario's quad stream.")
)

var (
	cRed    = "\x1b[91m"
	cYellow = "\x1b[93m"
	cGreen  = "\x1b[92m"
	cBold   = "\x1b[1m"
	cNone   = "\x1b[0m"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if !interactive {
		cRed, cYellow, cGreen, cBold, cNone = "", "", "", "", ""
	}

	data, err := os.ReadFile(*suitePath)
	if err != nil {
		log.Fatalf("%s[ERROR]%s Could not read suite manifest: %v", cRed, cNone, err)
	}
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		log.Fatalf("%s[ERROR]%s Could not parse %s: %v", cRed, cNone, *suitePath, err)
	}
	if len(suite.Scenarios) == 0 {
		log.Println("No scenarios in the suite.")
		return
	}
	dir := filepath.Dir(*suitePath)

	var bar *progressbar.ProgressBar
	if interactive && !*verbose {
		bar = progressbar.NewOptions(len(suite.Scenarios),
			progressbar.OptionSetDescription("quadcheck"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
	}
	tick := func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	tasks := make(chan SuiteEntry, len(suite.Scenarios))
	resultsChan := make(chan *ScenarioResult, len(suite.Scenarios))
	var wg sync.WaitGroup
	for i := 0; i < *jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range tasks {
				resultsChan <- runScenario(e, dir)
				tick()
			}
		}()
	}
	for _, e := range suite.Scenarios {
		if e.Skip {
			msg := e.Reason
			if msg == "" {
				msg = "explicitly skipped"
			}
			resultsChan <- &ScenarioResult{Name: e.Name, Status: "SKIP", Message: msg}
			tick()
			continue
		}
		tasks <- e
	}
	close(tasks)
	wg.Wait()
	close(resultsChan)

	var results []*ScenarioResult
	for r := range resultsChan {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	printSummary(results)
	writeReport(results)
	for _, r := range results {
		if r.Status == "FAIL" || r.Status == "ERROR" {
			os.Exit(1)
		}
	}
}

func runScenario(e SuiteEntry, dir string) *ScenarioResult {
	build, ok := scenarios[e.Name]
	if !ok {
		return &ScenarioResult{Name: e.Name, Status: "ERROR", Message: "no such scenario is registered"}
	}
	if e.Golden == "" {
		return &ScenarioResult{Name: e.Name, Status: "ERROR", Message: "no golden file configured"}
	}
	goldenPath := filepath.Join(dir, e.Golden)

	var dump string
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				ice, ok := r.(*util.InternalError)
				if !ok {
					panic(r)
				}
				err = ice
			}
		}()
		u := newUnit()
		u.cfg.DumpQuads = *verbose
		out := build(u)
		dump = out.String()
		if u.cfg.DumpQuads {
			log.Printf("%s--- %s ---%s\n%s", cBold, e.Name, cNone, dump)
		}
		return nil
	}()
	if err != nil {
		return &ScenarioResult{Name: e.Name, Status: "ERROR", Message: err.Error()}
	}

	if *update {
		if err := os.WriteFile(goldenPath, []byte(dump), 0644); err != nil {
			return &ScenarioResult{Name: e.Name, Status: "ERROR", Message: fmt.Sprintf("could not write golden file: %v", err)}
		}
		return &ScenarioResult{Name: e.Name, Status: "PASS", Message: "golden file updated", GoldenHash: hashOf(dump)}
	}

	golden, err2 := os.ReadFile(goldenPath)
	if err2 != nil {
		return &ScenarioResult{Name: e.Name, Status: "ERROR", Message: fmt.Sprintf("could not read golden file: %v (run with -update to create it)", err2)}
	}
	if diff := cmp.Diff(string(golden), dump); diff != "" {
		return &ScenarioResult{Name: e.Name, Status: "FAIL", Message: "dump differs from golden file", Diff: diff, GoldenHash: hashOf(string(golden))}
	}
	return &ScenarioResult{Name: e.Name, Status: "PASS", GoldenHash: hashOf(string(golden))}
}

func hashOf(s string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(s))
}

func printSummary(results []*ScenarioResult) {
	counts := map[string]int{}
	for _, r := range results {
		counts[r.Status]++
		color := cGreen
		switch r.Status {
		case "FAIL", "ERROR":
			color = cRed
		case "SKIP":
			color = cYellow
		}
		msg := r.Message
		if msg != "" {
			msg = " — " + msg
		}
		log.Printf("%s[%s]%s %s%s", color, r.Status, cNone, r.Name, msg)
		if r.Diff != "" {
			log.Printf("%s", r.Diff)
		}
	}
	log.Printf("%s%d passed, %d failed, %d errored, %d skipped%s",
		cBold, counts["PASS"], counts["FAIL"], counts["ERROR"], counts["SKIP"], cNone)
}

func writeReport(results []*ScenarioResult) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Printf("%s[WARN]%s Could not marshal the JSON report: %v", cYellow, cNone, err)
		return
	}
	if err := os.WriteFile(*outputJSON, data, 0644); err != nil {
		log.Printf("%s[WARN]%s Could not write %s: %v", cYellow, cNone, *outputJSON, err)
	}
}
