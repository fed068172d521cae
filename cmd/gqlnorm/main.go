package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hanpama/gqlnorm/internal/document"
	"github.com/hanpama/gqlnorm/internal/eventbus"
	"github.com/hanpama/gqlnorm/internal/normalize"
	"github.com/hanpama/gqlnorm/internal/otel"
	"github.com/hanpama/gqlnorm/internal/schema"
	"github.com/hanpama/gqlnorm/internal/server"
	"github.com/hanpama/gqlnorm/internal/validation"
)

const rootUsage = `gqlnorm — GraphQL document normalizer

USAGE:
  gqlnorm <command> [flags]

COMMANDS:
  normalize        Parse a document, inline fragment spreads, print the tree
  validate         Check a document's root operation against schema root types
  serve            Run the HTTP normalization endpoint
  help             Show help for any command
`

const normalizeUsage = `normalize FLAGS:
  -in <file>      Read the document from file (default: stdin)
  -pretty         Indent the JSON output
  -no-expand      Print the simplified tree without inlining fragments
`

const validateUsage = `validate FLAGS:
  -in <file>              Read the document from file (default: stdin)
  -schema.query <name>    Root query type name; empty means absent (default: Query)
  -schema.mutation <name> Root mutation type name; empty means absent
  -legacy                 Use the original root-type check
  (Exits non-zero unless the result is Success)
`

const serveUsage = `serve FLAGS:
  -server.addr <addr>         HTTP listen address (default: :8080)
  -server.pretty              Pretty-print JSON responses
  -server.timeout <duration>  Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>    Max request body size; 0 = unlimited
  -server.cors-origin <org>   Allowed CORS origin. Repeatable
  -schema.query <name>        Root query type name; empty means absent (default: Query)
  -schema.mutation <name>     Root mutation type name; empty means absent
  -legacy                     Use the original root-type check
  -otel.endpoint <addr>       OTLP collector endpoint
  -otel.service <name>        OpenTelemetry service name (default: gqlnorm)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gqlnorm", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "normalize":
		return cmdNormalize(cmdArgs)
	case "validate":
		return cmdValidate(cmdArgs)
	case "serve":
		return cmdServe(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "normalize":
		fmt.Print(normalizeUsage)
	case "validate":
		fmt.Print(validateUsage)
	case "serve":
		fmt.Print(serveUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdNormalize(args []string) error {
	in := ""
	pretty := false
	noExpand := false

	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&in, "in", in, "Input file")
	fs.BoolVar(&pretty, "pretty", pretty, "Indent the JSON output")
	fs.BoolVar(&noExpand, "no-expand", noExpand, "Skip fragment inlining")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, normalizeUsage)
		return err
	}

	source, err := readSource(in)
	if err != nil {
		return err
	}
	doc, err := document.Parse(source)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if !noExpand {
		doc = normalize.ExpandDocument(doc)
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

func cmdValidate(args []string) error {
	in := ""
	queryType := "Query"
	mutationType := ""
	legacy := false

	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&in, "in", in, "Input file")
	fs.StringVar(&queryType, "schema.query", queryType, "Root query type name")
	fs.StringVar(&mutationType, "schema.mutation", mutationType, "Root mutation type name")
	fs.BoolVar(&legacy, "legacy", legacy, "Use the original root-type check")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, validateUsage)
		return err
	}

	source, err := readSource(in)
	if err != nil {
		return err
	}
	doc, err := document.Parse(source)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	sch := &schema.Schema{QueryType: queryType, MutationType: mutationType}
	result := validation.Validate(doc, sch)
	if legacy {
		result = validation.ValidateLegacy(doc, sch)
	}
	fmt.Println(string(result))
	if result != validation.Success {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func cmdServe(args []string) error {
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	maxBody := int64(0)
	queryType := "Query"
	mutationType := ""
	legacy := false
	otelEndpoint := ""
	otelService := "gqlnorm"
	var corsOrigins stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Max request body size")
	fs.Var(&corsOrigins, "server.cors-origin", "Allowed CORS origin")
	fs.StringVar(&queryType, "schema.query", queryType, "Root query type name")
	fs.StringVar(&mutationType, "schema.mutation", mutationType, "Root mutation type name")
	fs.BoolVar(&legacy, "legacy", legacy, "Use the original root-type check")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	sch := &schema.Schema{QueryType: queryType, MutationType: mutationType}
	var sopts []server.Option
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	if maxBody > 0 {
		sopts = append(sopts, server.WithMaxBodyBytes(maxBody))
	}
	if len(corsOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(corsOrigins...))
	}
	if legacy {
		sopts = append(sopts, server.WithLegacyValidation())
	}
	handler := server.New(sch, sopts...)

	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, handler)
}

func readSource(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
