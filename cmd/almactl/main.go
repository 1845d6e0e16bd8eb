package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	almaclient "github.com/wrlc/alma-client-go"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "bib":
		bibCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "paths":
		pathsCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "almactl\n\nUsage:\n  almactl bib <mms_id> [-view brief|full] [-expand ...]\n  almactl report -path /shared/... [-limit N] [-token T] [-filter XML]\n  almactl paths [-folder /shared/...]\n\nConfiguration comes from alma.yml and the ALMA_* environment variables;\nALMA_API_KEY is required.")
}

func newClient() *almaclient.Client {
	cfg, err := almaclient.LoadConfig("alma.yml")
	if err != nil {
		fatalf("config: %v", err)
	}
	log, err := zap.NewProduction()
	if err != nil {
		fatalf("logger: %v", err)
	}
	c, err := almaclient.New(cfg, almaclient.WithLogger(log))
	if err != nil {
		fatalf("client: %v", err)
	}
	return c
}

func bibCmd(args []string) {
	fs := flag.NewFlagSet("bib", flag.ExitOnError)
	var view, expand string
	fs.StringVar(&view, "view", "", "view to request (full or brief)")
	fs.StringVar(&expand, "expand", "", "comma-separated expansions")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	mmsID := fs.Arg(0)

	c := newClient()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	bib, err := c.Bibs().Get(ctx, mmsID, almaclient.GetBibOptions{View: view, Expand: expand})
	if err != nil {
		fatalf("get bib %s: %v", mmsID, err)
	}
	printJSON(bib.ToMap())
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	var path, token, filter string
	var limit int
	fs.StringVar(&path, "path", "", "catalog path of the report")
	fs.IntVar(&limit, "limit", 0, "maximum rows per page (service default 1000)")
	fs.StringVar(&token, "token", "", "resumption token of a previous page")
	fs.StringVar(&filter, "filter", "", "raw OBI filter expression")
	_ = fs.Parse(args)
	if path == "" {
		fs.Usage()
		os.Exit(2)
	}

	c := newClient()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rep, err := c.Analytics().GetReport(ctx, almaclient.ReportRequest{
		Path:            path,
		Limit:           limit,
		ResumptionToken: token,
		FilterXML:       filter,
	})
	if err != nil {
		fatalf("get report %s: %v", path, err)
	}
	printJSON(rep)
}

func pathsCmd(args []string) {
	fs := flag.NewFlagSet("paths", flag.ExitOnError)
	var folder string
	fs.StringVar(&folder, "folder", "", "catalog folder to list; empty lists the roots")
	_ = fs.Parse(args)

	c := newClient()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	paths, err := c.Analytics().ListPaths(ctx, folder)
	if err != nil {
		fatalf("list paths: %v", err)
	}
	printJSON(paths)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("encode: %v", err)
	}
	fmt.Println(string(out))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "almactl: "+format+"\n", args...)
	os.Exit(1)
}
