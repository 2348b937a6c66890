// Command jsonlint validates JSON instance documents against a JSON Schema.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/jacoelho/jsonschema"
	jserrors "github.com/jacoelho/jsonschema/errors"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	app := &cli.App{
		Name:      "jsonlint",
		Usage:     "validate JSON documents against a JSON Schema",
		ArgsUsage: "<document.json> [document.json ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "schema",
				Usage:    "path to the schema document",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "yaml",
				Usage: "treat the schema document as YAML",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log compilation and validation diagnostics",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "nesting depth guard for schema and instance documents",
			},
			&cli.StringFlag{
				Name:  "cpuprofile",
				Usage: "write CPU profile to file",
			},
			&cli.StringFlag{
				Name:  "memprofile",
				Usage: "write memory profile to file",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("error: at least one document argument is required", 2)
			}
			if c.Bool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}

			if path := c.String("cpuprofile"); path != "" {
				stop, err := startCPUProfile(path)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error starting CPU profile: %v", err), 1)
				}
				defer func() {
					if err := stop(); err != nil {
						log.Errorf("stopping CPU profile: %v", err)
					}
				}()
			}
			if path := c.String("memprofile"); path != "" {
				defer func() {
					if err := writeMemProfile(path); err != nil {
						log.Errorf("writing memory profile: %v", err)
					}
				}()
			}

			schemaPath := c.String("schema")
			data, err := os.ReadFile(schemaPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error reading schema: %v", err), 1)
			}
			if c.Bool("yaml") {
				data, err = yamlToJSON(data)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error converting schema: %v", err), 1)
				}
			}

			var opts []jsonschema.CompileOption
			if depth := c.Int("max-depth"); depth > 0 {
				opts = append(opts, jsonschema.WithMaxDepth(depth))
			}

			start := time.Now()
			engine, err := jsonschema.NewEngine(data, opts...)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error compiling schema %s: %v", schemaPath, err), 1)
			}
			log.WithFields(logrus.Fields{
				"schema":  schemaPath,
				"elapsed": time.Since(start),
			}).Debug("schema compiled")

			failed := false
			for _, path := range c.Args().Slice() {
				if err := validateFile(engine, path); err != nil {
					failed = true
					if violations, ok := jserrors.AsValidations(err); ok {
						for _, v := range violations {
							fmt.Fprintln(c.App.ErrWriter, v.Error())
						}
						fmt.Fprintf(c.App.ErrWriter, "%s fails to validate\n", path)
						continue
					}
					fmt.Fprintf(c.App.ErrWriter, "error validating %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(c.App.Writer, "%s validates\n", path)
			}
			if failed {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func validateFile(engine *jsonschema.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document %s: %w", path, err)
	}
	defer f.Close()
	return engine.Validate(f)
}

// yamlToJSON converts a YAML schema document to JSON so the compiler only
// ever sees JSON bytes.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return out, nil
}

// normalizeYAML rewrites map[any]any trees into map[string]any so they can
// be marshalled as JSON objects.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}

func startCPUProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, fmt.Errorf("start cpu profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return nil, fmt.Errorf("start cpu profile %s: %w", path, err)
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile %s: %w", path, err)
		}
		return nil
	}, nil
}

func writeMemProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mem profile %s: %w", path, err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return fmt.Errorf("write mem profile %s: %w (close failed: %w)", path, err, closeErr)
		}
		return fmt.Errorf("write mem profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close mem profile %s: %w", path, err)
	}
	return nil
}
