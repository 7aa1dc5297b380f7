package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/formforge/formforge"
	"github.com/formforge/formforge/pkg/export"
	"github.com/formforge/formforge/pkg/fill"
	tuiwalk "github.com/formforge/formforge/pkg/fill/tui"
	"github.com/formforge/formforge/pkg/preview"
	"github.com/formforge/formforge/pkg/schema"
	"github.com/formforge/formforge/pkg/store"
)

const usage = `usage: formforge-cli <command> [flags]

commands:
  import    derive forms from an OpenAPI document and save them
  render    write the HTML preview of a saved form
  fill      answer a saved form interactively and submit
  export    write a form's responses as CSV or XLSX
  list      list saved forms
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "import":
		runImport(ctx, os.Args[2:])
	case "render":
		runRender(ctx, os.Args[2:])
	case "fill":
		runFill(ctx, os.Args[2:])
	case "export":
		runExport(ctx, os.Args[2:])
	case "list":
		runList(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func openStore(path string) *store.SQLite {
	st, err := formforge.OpenStore(path)
	if err != nil {
		log.Fatalf("open store %s: %v", path, err)
	}
	return st
}

func runImport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "", "OpenAPI document or form definition path")
	dbPath := fs.String("db", "formforge.db", "store path")
	fs.Parse(args)

	if *source == "" {
		log.Fatal("import: -source is required")
	}
	st := openStore(*dbPath)
	defer st.Close()

	raw, err := os.ReadFile(*source)
	if err != nil {
		log.Fatalf("read %s: %v", *source, err)
	}

	forms, err := formforge.ImportOpenAPI(ctx, raw)
	if err != nil {
		// Not an OpenAPI document; try the plain form definition codecs.
		form, defErr := schema.Decode(raw, schema.DetectFormat(*source))
		if defErr != nil {
			log.Fatalf("import %s: %v", *source, err)
		}
		schema.AssignIDs(&form)
		forms = []formforge.Form{form}
	}

	for _, form := range forms {
		saved, err := st.Create(ctx, form)
		if err != nil {
			log.Fatalf("save form: %v", err)
		}
		fmt.Printf("%s  %s\n", saved.ID, saved.Title)
	}
}

func runRender(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	formID := fs.String("form", "", "form id")
	dbPath := fs.String("db", "formforge.db", "store path")
	output := fs.String("output", "", "output file (stdout if empty)")
	fs.Parse(args)

	if *formID == "" {
		log.Fatal("render: -form is required")
	}
	st := openStore(*dbPath)
	defer st.Close()

	form, err := st.Fetch(ctx, *formID)
	if err != nil {
		log.Fatalf("fetch form %s: %v", *formID, err)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("create %s: %v", *output, err)
		}
		defer f.Close()
		out = f
	}
	if err := preview.RenderPage(out, form); err != nil {
		log.Fatalf("render form: %v", err)
	}
}

func runFill(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	formID := fs.String("form", "", "form id")
	dbPath := fs.String("db", "formforge.db", "store path")
	fs.Parse(args)

	if *formID == "" {
		log.Fatal("fill: -form is required")
	}
	st := openStore(*dbPath)
	defer st.Close()

	session := formforge.BeginFill(ctx, *formID, st)
	switch session.State() {
	case fill.StateReady:
	case fill.StateNotFound:
		log.Fatalf("form %s not found", *formID)
	case fill.StateClosed:
		log.Fatalf("form %s is no longer accepting responses", *formID)
	case fill.StateLoadError:
		log.Fatalf("load form %s: %v", *formID, session.LoadErr())
	default:
		log.Fatalf("form %s is not fillable (%s)", *formID, session.State())
	}

	if err := tuiwalk.NewRunner(nil).Run(ctx, session); err != nil {
		log.Fatalf("fill form: %v", err)
	}
	if err := session.Submit(ctx, st); err != nil {
		log.Fatalf("submit: %v", err)
	}
	fmt.Println("response recorded")
}

func runExport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	formID := fs.String("form", "", "form id")
	dbPath := fs.String("db", "formforge.db", "store path")
	format := fs.String("format", "csv", "csv or xlsx")
	output := fs.String("output", "", "output file (stdout if empty)")
	fs.Parse(args)

	if *formID == "" {
		log.Fatal("export: -form is required")
	}
	st := openStore(*dbPath)
	defer st.Close()

	form, err := st.Fetch(ctx, *formID)
	if err != nil {
		log.Fatalf("fetch form %s: %v", *formID, err)
	}
	responses, err := st.Responses(ctx, *formID)
	if err != nil {
		log.Fatalf("load responses: %v", err)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("create %s: %v", *output, err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "csv":
		err = export.WriteCSV(out, form, responses)
	case "xlsx":
		err = export.WriteXLSX(out, form, responses)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("export: %v", err)
	}
}

func runList(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", "formforge.db", "store path")
	fs.Parse(args)

	st := openStore(*dbPath)
	defer st.Close()

	forms, err := st.List(ctx)
	if err != nil {
		log.Fatalf("list forms: %v", err)
	}
	for _, form := range forms {
		state := "draft"
		switch {
		case form.Published && form.Accepting:
			state = "open"
		case form.Published:
			state = "closed"
		}
		fmt.Printf("%s  %-6s  %s\n", form.ID, state, form.Title)
	}
}
