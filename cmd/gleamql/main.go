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
	"strings"
	"time"

	"github.com/cobbinma/gleamql"
	"github.com/cobbinma/gleamql/gleamqlhttp"
	"github.com/cobbinma/gleamql/internal/eventbus"
	"github.com/cobbinma/gleamql/internal/otel"
	"github.com/cobbinma/gleamql/introspection"
)

const rootUsage = `gleamql — GraphQL client tools

USAGE:
  gleamql <command> [flags]

COMMANDS:
  introspect       Fetch a server's schema and print it as SDL or JSON
  send             POST a raw GraphQL document and print the response
  help             Show help for any command
`

const introspectUsage = `introspect FLAGS:
  -endpoint <url>        GraphQL endpoint URL (required)
  -format <sdl|json>     Output format (default: sdl)
  -out <file>            Write output to file (default: stdout)
  -header <Name: value>  Extra HTTP request header. Repeatable
  -timeout <duration>    Request timeout, e.g. 10s (default: 30s)
  -otel.endpoint <addr>  OTLP collector endpoint
  -otel.service <name>   OpenTelemetry service name (default: gleamql)
`

const sendUsage = `send FLAGS:
  -endpoint <url>        GraphQL endpoint URL (required)
  -query <document>      GraphQL document to send; "-" reads stdin (required)
  -var <name=value>      Operation variable. The value is parsed as JSON;
                         bare text is taken as a string. Repeatable
  -header <Name: value>  Extra HTTP request header. Repeatable
  -timeout <duration>    Request timeout, e.g. 10s (default: 30s)
  -pretty                Pretty-print the response JSON
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gleamql", flag.ContinueOnError)
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
	case "introspect":
		return cmdIntrospect(cmdArgs)
	case "send":
		return cmdSend(cmdArgs)
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
	case "introspect":
		fmt.Print(introspectUsage)
	case "send":
		fmt.Print(sendUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type headerFlag struct {
	h http.Header
}

func (f *headerFlag) String() string { return "" }

func (f *headerFlag) Set(v string) error {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return fmt.Errorf("invalid header %q, want \"Name: value\"", v)
	}
	if f.h == nil {
		f.h = http.Header{}
	}
	f.h.Add(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	return nil
}

type varFlag struct {
	m map[string]any
}

func (f *varFlag) String() string { return "" }

func (f *varFlag) Set(v string) error {
	parts := strings.SplitN(v, "=", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return fmt.Errorf("invalid variable %q, want name=value", v)
	}
	if f.m == nil {
		f.m = map[string]any{}
	}
	var value any
	if err := json.Unmarshal([]byte(parts[1]), &value); err != nil {
		value = parts[1]
	}
	f.m[strings.TrimSpace(parts[0])] = value
	return nil
}

func transportOptions(headers headerFlag) []gleamqlhttp.Option {
	var opts []gleamqlhttp.Option
	for name, values := range headers.h {
		for _, value := range values {
			opts = append(opts, gleamqlhttp.WithHeader(name, value))
		}
	}
	return opts
}

func cmdIntrospect(args []string) error {
	endpoint := ""
	format := "sdl"
	outFile := ""
	timeout := 30 * time.Second
	otelEndpoint := ""
	otelService := "gleamql"
	var headers headerFlag

	fs := flag.NewFlagSet("introspect", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&endpoint, "endpoint", endpoint, "GraphQL endpoint URL")
	fs.StringVar(&format, "format", format, "Output format")
	fs.StringVar(&outFile, "out", outFile, "Write output to file")
	fs.Var(&headers, "header", "Extra HTTP request header")
	fs.DurationVar(&timeout, "timeout", timeout, "Request timeout")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, introspectUsage)
		return err
	}
	if endpoint == "" {
		fmt.Fprint(os.Stderr, introspectUsage)
		return fmt.Errorf("-endpoint is required")
	}
	if format != "sdl" && format != "json" {
		fmt.Fprint(os.Stderr, introspectUsage)
		return fmt.Errorf("unknown format %q", format)
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	transport := gleamqlhttp.New(endpoint, transportOptions(headers)...)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	sch, err := gleamql.Send(ctx, introspection.Operation(), transport, nil)
	if err != nil {
		return fmt.Errorf("introspect: %w", err)
	}
	if sch == nil {
		return fmt.Errorf("introspect: server returned no data")
	}

	var out []byte
	switch format {
	case "sdl":
		out = []byte(introspection.Render(sch))
	case "json":
		out, err = json.MarshalIndent(sch, "", "  ")
		if err != nil {
			return fmt.Errorf("introspect: encode schema: %w", err)
		}
		out = append(out, '\n')
	}
	if outFile == "" {
		fmt.Print(string(out))
		return nil
	}
	return os.WriteFile(outFile, out, 0644)
}

func cmdSend(args []string) error {
	endpoint := ""
	query := ""
	timeout := 30 * time.Second
	pretty := false
	var headers headerFlag
	var vars varFlag

	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&endpoint, "endpoint", endpoint, "GraphQL endpoint URL")
	fs.StringVar(&query, "query", query, "GraphQL document to send")
	fs.Var(&vars, "var", "Operation variable")
	fs.Var(&headers, "header", "Extra HTTP request header")
	fs.DurationVar(&timeout, "timeout", timeout, "Request timeout")
	fs.BoolVar(&pretty, "pretty", pretty, "Pretty-print the response JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, sendUsage)
		return err
	}
	if endpoint == "" {
		fmt.Fprint(os.Stderr, sendUsage)
		return fmt.Errorf("-endpoint is required")
	}
	if query == "" {
		fmt.Fprint(os.Stderr, sendUsage)
		return fmt.Errorf("-query is required")
	}
	if query == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read query from stdin: %w", err)
		}
		query = string(raw)
	}

	variables := vars.m
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	transport := gleamqlhttp.New(endpoint, transportOptions(headers)...)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	resp, err := transport(ctx, body)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	out := resp.Body
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, resp.Body, "", "  "); err == nil {
			out = buf.Bytes()
		}
	}
	fmt.Println(string(bytes.TrimRight(out, "\n")))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned HTTP %d", resp.StatusCode)
	}
	return nil
}
