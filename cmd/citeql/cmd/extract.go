package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lexcite/pkg/citation"
	"lexcite/pkg/citation/model"
	"lexcite/pkg/citation/resolver"
	"lexcite/pkg/ledger"
)

var (
	continueFlag bool
	annotateFlag bool
	documentID   string

	extractCmd = &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract and resolve citations from a text file",
		Long: `Extract reads a file, runs the citation engine over its contents, resolves
citations into resources, and records those resources in the ledger so a
later "citeql extract --continue" run can resolve Short, Supra and
Reference citations against them.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}
)

func init() {
	extractCmd.Flags().BoolVar(&continueFlag, "continue", false, "seed resolution from resources recorded by earlier extract runs")
	extractCmd.Flags().BoolVar(&annotateFlag, "annotate", false, "print the input text with citation spans wrapped instead of a resource list")
	extractCmd.Flags().StringVar(&documentID, "id", "", "document id to record resources under (defaults to a generated uuid)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("citeql: read %s: %w", path, err)
	}

	engine, err := buildEngine()
	if err != nil {
		return fmt.Errorf("citeql: build engine: %w", err)
	}

	cites := engine.GetCitations(string(raw), citation.Options{MergeReferences: true})

	if annotateFlag {
		annotated, err := citation.Annotate(string(raw), cites, wrapMatch)
		if err != nil {
			return fmt.Errorf("citeql: annotate: %w", err)
		}
		fmt.Println(annotated)
		return nil
	}

	store, err := openLedger()
	if err != nil {
		return fmt.Errorf("citeql: open ledger: %w", err)
	}
	defer store.Close()

	res, err := resolverFor(store)
	if err != nil {
		return err
	}

	pairs, byResource := citation.ResolveCitations(cites, res)

	id := documentID
	if id == "" {
		id = uuid.NewString()
	}
	if err := store.Record(byResource, id); err != nil {
		return fmt.Errorf("citeql: record resources: %w", err)
	}

	return printResources(id, pairs, byResource)
}

// resolverFor returns nil when --continue isn't set, so ResolveCitations
// falls back to its own default in-run resolver.
func resolverFor(store *ledger.Store) (*resolver.Resolver, error) {
	if !continueFlag {
		return nil, nil
	}
	seeds, err := store.Seed()
	if err != nil {
		return nil, fmt.Errorf("citeql: seed ledger: %w", err)
	}
	return ledger.Continue(nil, seeds), nil
}

func wrapMatch(c model.Citation, matchedText string) string {
	return "[[" + c.Variant().String() + ":" + matchedText + "]]"
}

func printResources(documentID string, pairs []resolver.Pair, byResource map[*model.Resource]model.List) error {
	type resourceOut struct {
		Key       string   `json:"key"`
		CaseName  string   `json:"case_name"`
		Citations []string `json:"citations"`
	}

	out := make([]resourceOut, 0, len(byResource))
	for res, cites := range byResource {
		texts := make([]string, 0, len(cites))
		for _, c := range cites {
			texts = append(texts, c.MatchedText())
		}
		out = append(out, resourceOut{Key: res.Key, CaseName: res.CaseName, Citations: texts})
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			DocumentID string        `json:"document_id"`
			Pairs      int           `json:"pair_count"`
			Resources  []resourceOut `json:"resources"`
		}{DocumentID: documentID, Pairs: len(pairs), Resources: out})
	}

	fmt.Printf("document %s: %d citation(s) resolved into %d resource(s)\n", documentID, len(pairs), len(out))
	for _, r := range out {
		fmt.Printf("  %s (%s): %v\n", r.CaseName, r.Key, r.Citations)
	}
	return nil
}
