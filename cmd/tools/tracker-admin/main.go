// cmd/tools/tracker-admin/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"jobhunt-tracker/internal/common/config"
	"jobhunt-tracker/internal/common/validation"
	"jobhunt-tracker/internal/tracker/blob"
	"jobhunt-tracker/pkg/registry"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	out := exportCmd.String("out", "", "File to write the blob to (default stdout)")
	in := importCmd.String("in", "", "File holding a JSON array of applications")
	force := importCmd.Bool("force", false, "Overwrite a non-empty blob")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	if os.Args[1] == "workers" {
		listWorkers(os.Stdout)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		err = withBlob(ctx, func(b blob.Blob) error {
			w := io.Writer(os.Stdout)
			if *out != "" {
				f, err := os.Create(*out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return exportBlob(ctx, b, w)
		})

	case "import":
		importCmd.Parse(os.Args[2:])
		if *in == "" {
			fmt.Println("Error: -in is required for import.")
			importCmd.Usage()
			os.Exit(1)
		}
		var data []byte
		data, err = os.ReadFile(*in)
		if err == nil {
			err = withBlob(ctx, func(b blob.Blob) error {
				return importBlob(ctx, b, data, *force)
			})
		}
		if err == nil {
			fmt.Printf("Imported %s\n", *in)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		err = withBlob(ctx, func(b blob.Blob) error {
			return validateStored(ctx, b, os.Stdout)
		})

	default:
		help()
		return
	}

	if err != nil {
		fmt.Printf("%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func withBlob(ctx context.Context, fn func(blob.Blob) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	b, closer, err := blob.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	return fn(b)
}

func exportBlob(ctx context.Context, b blob.Blob, w io.Writer) error {
	data, err := b.Read(ctx)
	if err == blob.ErrNotFound {
		data = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("failed to read blob: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// importBlob replaces the stored blob with data. The data must pass the
// same checks the worker manager applies on load.
func importBlob(ctx context.Context, b blob.Blob, data []byte, force bool) error {
	if result := validation.ValidateBlob(data); !result.Valid {
		return fmt.Errorf("invalid applications: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	if !force {
		existing, err := b.Read(ctx)
		switch {
		case err == blob.ErrNotFound:
		case err != nil:
			return fmt.Errorf("failed to read blob: %w", err)
		default:
			var current []json.RawMessage
			if json.Unmarshal(existing, &current) != nil || len(current) > 0 {
				return fmt.Errorf("blob on %s is not empty, use -force to overwrite", b.Backend())
			}
		}
	}

	return b.Write(ctx, data)
}

func validateStored(ctx context.Context, b blob.Blob, w io.Writer) error {
	data, err := b.Read(ctx)
	if err == blob.ErrNotFound {
		fmt.Fprintf(w, "No blob stored on %s.\n", b.Backend())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read blob: %w", err)
	}

	result := validation.ValidateBlob(data)
	if !result.Valid {
		return fmt.Errorf("blob is malformed: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	var apps []json.RawMessage
	_ = json.Unmarshal(data, &apps)
	fmt.Fprintf(w, "Blob validation passed. Found %d applications on %s.\n", len(apps), b.Backend())
	return nil
}

func listWorkers(w io.Writer) {
	for _, a := range registry.Activities() {
		fmt.Fprintf(w, "%-28s %-9s %s\n", a.TaskType, a.Category, a.Description)
	}
}

func help() {
	fmt.Println(`
Usage: tracker-admin <command> [flags]

Commands:
  export    Write the stored applications blob to a file or stdout
  import    Replace the stored blob with a validated JSON array
  validate  Check the stored blob against the record schema
  workers   List the job types served by the worker manager
  help      Show this help message

Examples:
  tracker-admin export -out backup.json
  tracker-admin import -in backup.json -force
  STORAGE_BACKEND=postgres tracker-admin validate`)
}
