// Package main implements a golden-file end-to-end harness for bearlangc.
//
// For every testdata/*.bear file it runs the translator and diffs the
// result against testdata/golden/<name>.cpp. Golden files are fingerprinted
// with xxhash in testdata/golden/fingerprints.txt so a golden file edited
// by hand (without regenerating it via -update) is flagged as stale rather
// than silently treated as ground truth.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"

	"bearlangc"
	"bearlangc/pkg/diag"
)

var (
	testFiles = flag.String("test-files", "testdata/*.bear", "Glob pattern for BearLang source fixtures.")
	goldenDir = flag.String("golden-dir", "testdata/golden", "Directory holding expected .cpp output and fingerprints.txt.")
	update    = flag.Bool("update", false, "Regenerate golden files and fingerprints instead of comparing against them.")
	verbose   = flag.Bool("v", false, "Print each fixture's status, not just failures.")
)

const fingerprintsName = "fingerprints.txt"

type fileResult struct {
	file    string
	status  string // PASS, FAIL, STALE, ERROR
	message string
	diff    string
}

func main() {
	flag.Parse()
	log.SetFlags(0)

	files, err := filepath.Glob(*testFiles)
	if err != nil {
		log.Fatalf("bad glob pattern %q: %v", *testFiles, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Printf("no fixtures matched %q", *testFiles)
		return
	}

	if *update {
		if err := os.MkdirAll(*goldenDir, 0o755); err != nil {
			log.Fatalf("could not create golden dir: %v", err)
		}
		if err := updateGolden(files); err != nil {
			log.Fatalf("update failed: %v", err)
		}
		return
	}

	fingerprints, err := readFingerprints()
	if err != nil {
		log.Fatalf("could not read fingerprints: %v", err)
	}

	var results []fileResult
	for _, f := range files {
		results = append(results, runFixture(f, fingerprints))
	}

	var failed int
	for _, r := range results {
		if *verbose || r.status != "PASS" {
			fmt.Printf("[%s] %s: %s\n", r.status, r.file, r.message)
			if r.diff != "" {
				fmt.Println(r.diff)
			}
		}
		if r.status != "PASS" {
			failed++
		}
	}

	fmt.Printf("%d fixture(s), %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func goldenPath(bearFile string) string {
	base := strings.TrimSuffix(filepath.Base(bearFile), ".bear")
	return filepath.Join(*goldenDir, base+".cpp")
}

func runFixture(bearFile string, fingerprints map[string]string) fileResult {
	source, err := os.ReadFile(bearFile)
	if err != nil {
		return fileResult{file: bearFile, status: "ERROR", message: fmt.Sprintf("could not read fixture: %v", err)}
	}

	got, translateErr := bearlangc.Translate(string(source))

	gp := goldenPath(bearFile)
	golden, err := os.ReadFile(gp)
	if os.IsNotExist(err) {
		if translateErr != nil {
			return fileResult{file: bearFile, status: "PASS", message: "expected translation failure: " + translateErr.Error()}
		}
		return fileResult{file: bearFile, status: "FAIL", message: fmt.Sprintf("missing golden file %s; run -update", gp)}
	}
	if err != nil {
		return fileResult{file: bearFile, status: "ERROR", message: fmt.Sprintf("could not read golden file: %v", err)}
	}

	if want, ok := fingerprints[gp]; ok {
		if got := fmt.Sprintf("%x", xxhash.Sum64(golden)); got != want {
			return fileResult{file: bearFile, status: "STALE", message: fmt.Sprintf("golden file %s was edited without -update (fingerprint mismatch)", gp)}
		}
	} else {
		return fileResult{file: bearFile, status: "STALE", message: fmt.Sprintf("golden file %s has no recorded fingerprint; run -update", gp)}
	}

	if translateErr != nil {
		return fileResult{
			file:    bearFile,
			status:  "FAIL",
			message: "expected successful translation, got error: " + diag.Render(string(source), translateErr),
		}
	}

	if diffText := cmp.Diff(string(golden), got); diffText != "" {
		return fileResult{file: bearFile, status: "FAIL", message: "output mismatch", diff: diffText}
	}
	return fileResult{file: bearFile, status: "PASS", message: "matches golden output"}
}

func updateGolden(files []string) error {
	fingerprints := make(map[string]string)
	for _, f := range files {
		source, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f, err)
		}
		out, err := bearlangc.Translate(string(source))
		if err != nil {
			log.Printf("skipping %s: translation failed: %v", f, err)
			continue
		}
		gp := goldenPath(f)
		if err := os.WriteFile(gp, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", gp, err)
		}
		fingerprints[gp] = fmt.Sprintf("%x", xxhash.Sum64([]byte(out)))
		log.Printf("wrote %s", gp)
	}
	return writeFingerprints(fingerprints)
}

func readFingerprints() (map[string]string, error) {
	path := filepath.Join(*goldenDir, fingerprintsName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	result := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "  ", 2)
		if len(parts) != 2 {
			continue
		}
		result[parts[1]] = parts[0]
	}
	return result, nil
}

func writeFingerprints(fingerprints map[string]string) error {
	var paths []string
	for p := range fingerprints {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var sb strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&sb, "%s  %s\n", fingerprints[p], p)
	}
	return os.WriteFile(filepath.Join(*goldenDir, fingerprintsName), []byte(sb.String()), 0o644)
}
