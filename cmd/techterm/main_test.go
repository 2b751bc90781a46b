package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/cognicore/techterm/pkg/techterm/internalerr"
)

func newDomainsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("domain", "default", "")
	cmd.Flags().String("domains", "", "")
	return cmd
}

func TestDomainsFromArgs(t *testing.T) {
	cmd := newDomainsCmd()
	if err := cmd.Flags().Set("domain", "nlp"); err != nil {
		t.Fatal(err)
	}
	domains, err := domainsFromArgs(cmd, []string{"a.pdf", "b.pdf"})
	if err != nil {
		t.Fatalf("domainsFromArgs failed: %v", err)
	}
	if len(domains) != 1 || domains[0].Name != "nlp" || len(domains[0].PDFs) != 2 {
		t.Errorf("domains = %+v", domains)
	}
}

func TestDomainsFromArgsNoPDFs(t *testing.T) {
	if _, err := domainsFromArgs(newDomainsCmd(), nil); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDomainsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domains.yaml")
	content := "vision:\n  - v1.pdf\nnlp:\n  - n1.pdf\n  - n2.pdf\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newDomainsCmd()
	if err := cmd.Flags().Set("domains", path); err != nil {
		t.Fatal(err)
	}
	domains, err := domainsFromArgs(cmd, nil)
	if err != nil {
		t.Fatalf("domainsFromArgs failed: %v", err)
	}
	if len(domains) != 2 {
		t.Fatalf("got %d domains, want 2", len(domains))
	}
	if domains[0].Name != "nlp" || len(domains[0].PDFs) != 2 {
		t.Errorf("domains[0] = %+v, want nlp with 2 PDFs", domains[0])
	}
	if domains[1].Name != "vision" || domains[1].PDFs[0] != "v1.pdf" {
		t.Errorf("domains[1] = %+v", domains[1])
	}
}

func TestDomainsFromEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domains.yaml")
	if err := os.WriteFile(path, []byte("# nothing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd := newDomainsCmd()
	if err := cmd.Flags().Set("domains", path); err != nil {
		t.Fatal(err)
	}
	if _, err := domainsFromArgs(cmd, nil); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
