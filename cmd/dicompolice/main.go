// Package main implements the dicompolice CLI tool.
// It validates DICOM Key Object Selection manifests against IHE profiles.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/engine"
	"github.com/nhermab/DICOMPolice-sub004/logger"
	"github.com/nhermab/DICOMPolice-sub004/worker"
)

const usage = `dicompolice - DICOM manifest validator

Usage:
  dicompolice [options] <file>...
  dicompolice [options] -           (read from stdin)
  cat manifest.dcm | dicompolice -  (pipe input)

Examples:
  dicompolice manifest.dcm
  dicompolice -profile IHEXDSIManifest manifest.dcm
  dicompolice -profile IHEMADO -output json manifest.dcm
  dicompolice -workers 8 studies/*.dcm
  cat manifest.dcm | dicompolice -

Options:
`

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds CLI configuration
type Config struct {
	Profile     string
	TemplateDir string
	Output      OutputFormat
	Workers     int
	Quiet       bool
	Verbose     bool
	ShowVersion bool
	Help        bool
	Files       []string
}

// ValidationOutput represents the JSON output structure
type ValidationOutput struct {
	Object   string        `json:"object"`
	Valid    bool          `json:"valid"`
	Profile  string        `json:"profile,omitempty"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Info     int           `json:"info"`
	Issues   []IssueOutput `json:"issues,omitempty"`
	Duration string        `json:"duration"`
}

// IssueOutput represents a single issue in JSON output
type IssueOutput struct {
	Severity    string   `json:"severity"`
	Code        string   `json:"code"`
	Diagnostics string   `json:"diagnostics"`
	Expression  []string `json:"expression,omitempty"`
	Check       string   `json:"check,omitempty"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("dicompolice v%s\n", dp.Version)
		os.Exit(0)
	}

	if config.Help || len(config.Files) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	exitCode := run(config)
	os.Exit(exitCode)
}

func parseFlags() *Config {
	config := &Config{
		Output: OutputText,
	}

	var output string

	flag.StringVar(&config.Profile, "profile", "", "IHE profile to validate against (IHEXDSIManifest, IHEMADO)")
	flag.StringVar(&config.TemplateDir, "template-dir", "", "Directory of additional template definition files")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers for multiple files (0 = sequential)")
	flag.BoolVar(&config.Quiet, "quiet", false, "Only show errors and warnings")
	flag.BoolVar(&config.Verbose, "verbose", false, "Show detailed output, including informational findings")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	switch strings.ToLower(output) {
	case "json":
		config.Output = OutputJSON
	default:
		config.Output = OutputText
	}

	config.Files = flag.Args()

	return config
}

func run(config *Config) int {
	profile, ok := dp.ParseProfile(config.Profile)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown profile %q (expected IHEXDSIManifest or IHEMADO)\n", config.Profile)
		return 2
	}

	log := logger.Default()
	switch {
	case config.Quiet:
		log.SetLevel(logger.LevelError)
	case config.Verbose:
		log.SetLevel(logger.LevelDebug)
	}
	log.Debug("profile %s, %d worker(s)", profile, config.Workers)

	opts := []dp.Option{
		dp.WithVerbose(config.Verbose),
	}
	if config.TemplateDir != "" {
		opts = append(opts, dp.WithTemplateDir(config.TemplateDir))
	}

	v, err := engine.New(context.Background(), profile, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize validator: %v\n", err)
		return 2
	}

	// Expand glob patterns up front so the worker pool sees concrete paths
	files := make([]string, 0, len(config.Files))
	hasErrors := false
	for _, file := range config.Files {
		if file == "-" {
			files = append(files, file)
			continue
		}
		matches, globErr := filepath.Glob(file)
		if globErr != nil {
			fmt.Fprintf(os.Stderr, "Error with pattern '%s': %v\n", file, globErr)
			hasErrors = true
			continue
		}
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No files match pattern: %s\n", file)
			hasErrors = true
			continue
		}
		files = append(files, matches...)
	}

	var outputs []ValidationOutput
	if config.Workers > 1 && len(files) > 1 {
		outputs, hasErrors = runParallel(v, files, config, hasErrors)
	} else {
		outputs = make([]ValidationOutput, 0, len(files))
		for _, file := range files {
			output, fileHasErrors := validateFile(v, file, config)
			outputs = append(outputs, output)
			if fileHasErrors {
				hasErrors = true
			}
		}
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	}

	if hasErrors {
		return 1
	}
	return 0
}

func runParallel(v *engine.Validator, files []string, config *Config, hasErrors bool) ([]ValidationOutput, bool) {
	pool := worker.NewPool(v.Validate, config.Workers)

	// Unreadable files never reach the pool; their read error is carried
	// in a synthesized result so the user sees the real failure.
	failures := make(chan *worker.JobResult, len(files))
	go func() {
		for _, file := range files {
			raw, err := os.ReadFile(file)
			if err != nil {
				failures <- &worker.JobResult{ID: file, Error: err}
				continue
			}
			pool.Submit(worker.Job{ID: file, Object: raw})
		}
		close(failures)
	}()

	outputs := make([]ValidationOutput, 0, len(files))
	byID := make(map[string]*worker.JobResult, len(files))
	for received := 0; received < len(files); received++ {
		select {
		case jr := <-pool.Results():
			byID[jr.ID] = jr
		case jr, ok := <-failures:
			if !ok {
				failures = nil
				received--
				continue
			}
			byID[jr.ID] = jr
		}
	}
	pool.Close()

	// Report in input order regardless of completion order
	for _, file := range files {
		jr, ok := byID[file]
		if !ok {
			continue
		}
		output, fileHasErrors := reportResult(file, jr.Result, jr.Error, time.Duration(jr.Duration), config)
		outputs = append(outputs, output)
		if fileHasErrors {
			hasErrors = true
		}
	}
	return outputs, hasErrors
}

func validateFile(v *engine.Validator, path string, config *Config) (ValidationOutput, bool) {
	var data []byte
	var err error
	name := path

	if path == "-" {
		name = "stdin"
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			return ValidationOutput{Object: name, Valid: false, Errors: 1}, true
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			output := ValidationOutput{
				Object: path,
				Valid:  false,
				Errors: 1,
				Issues: []IssueOutput{{
					Severity:    "error",
					Code:        "processing",
					Diagnostics: fmt.Sprintf("Failed to read file: %v", err),
				}},
			}
			if config.Output == OutputText {
				fmt.Printf("Error reading %s: %v\n", path, err)
			}
			return output, true
		}
	}

	startTime := time.Now()
	result, err := v.Validate(context.Background(), data)
	duration := time.Since(startTime)

	return reportResult(name, result, err, duration, config)
}

func reportResult(name string, result *dp.Result, err error, duration time.Duration, config *Config) (ValidationOutput, bool) {
	if err != nil {
		output := ValidationOutput{
			Object:   name,
			Valid:    false,
			Errors:   1,
			Duration: duration.String(),
			Issues: []IssueOutput{{
				Severity:    "error",
				Code:        "processing",
				Diagnostics: fmt.Sprintf("Validation failed: %v", err),
			}},
		}
		if config.Output == OutputText {
			fmt.Printf("Error validating %s: %v\n", name, err)
		}
		return output, true
	}

	output := ValidationOutput{
		Object:   name,
		Valid:    !result.HasErrors(),
		Profile:  result.Profile,
		Errors:   result.ErrorCount(),
		Warnings: result.WarningCount(),
		Info:     result.InfoCount(),
		Duration: duration.Round(time.Microsecond).String(),
	}

	for _, iss := range result.Issues {
		output.Issues = append(output.Issues, IssueOutput{
			Severity:    string(iss.Severity),
			Code:        string(iss.Code),
			Diagnostics: iss.Diagnostics,
			Expression:  iss.Expression,
			Check:       iss.Check,
		})
	}

	if config.Output == OutputText {
		printTextResult(name, result, duration, config)
	}

	return output, result.HasErrors()
}

func printTextResult(name string, result *dp.Result, duration time.Duration, config *Config) {
	status := "VALID"
	if result.HasErrors() {
		status = "INVALID"
	}

	fmt.Printf("== %s ==\n", name)
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Errors: %d, Warnings: %d, Info: %d\n", result.ErrorCount(), result.WarningCount(), result.InfoCount())
	if result.SOPClassUID != "" {
		fmt.Printf("Content type: %s\n", result.SOPClassUID)
	}
	if result.Profile != "" {
		fmt.Printf("Profile: %s\n", result.Profile)
	}
	fmt.Printf("Duration: %s\n", duration.Round(time.Microsecond))

	if len(result.Issues) > 0 {
		fmt.Println("\nFindings:")
		for _, iss := range result.Issues {
			if config.Quiet && iss.Severity == dp.SeverityInformation {
				continue
			}

			severityIcon := getSeverityIcon(iss.Severity)
			location := ""
			if len(iss.Expression) > 0 {
				location = fmt.Sprintf(" @ %s", strings.Join(iss.Expression, ", "))
			}

			fmt.Printf("  %s [%s] %s%s\n", severityIcon, iss.Code, iss.Diagnostics, location)
		}
	}

	fmt.Println()
}

func getSeverityIcon(severity dp.Severity) string {
	switch severity {
	case dp.SeverityError:
		return "ERROR"
	case dp.SeverityWarning:
		return "WARN "
	case dp.SeverityInformation:
		return "INFO "
	default:
		return "     "
	}
}
