// Package eval implements the sibylctl eval command.
package eval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sibylline/sibyl/internal/sibylctl/cmd/util"
	dataset "github.com/sibylline/sibyl/internal/sibylctl/eval"
)

const evalExample = `  # Run the full built-in dataset against a local server
  sibylctl eval

  # Only the customer analysis questions
  sibylctl eval --category=customer_analysis

  # Three random hard questions from a custom dataset
  sibylctl eval --dataset=cases.yml --difficulty=hard --num=3`

type EvalOptions struct {
	ServerAddr  string
	Token       string
	DatasetPath string
	Category    string
	Difficulty  string
	Num         int

	factory util.Factory
	util.IOStreams
}

func NewCmdEval(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := NewEvalOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "eval",
		DisableFlagsInUseLine: true,
		Short:                 "Run the evaluation dataset against a sibyld server",
		Long: `
Send every question of the evaluation dataset to the server and score
the answers by expected-keyword containment. A case passes when the
answer contains every expected keyword, ignoring case.

The command exits non-zero when any case fails, so it can gate CI.`,
		Example: evalExample,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete())
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&o.ServerAddr, "server", o.ServerAddr, "Sibyld HTTP server address")
	cmd.Flags().StringVar(&o.Token, "token", o.Token, "Bearer token sent with every request")
	cmd.Flags().StringVar(&o.DatasetPath, "dataset", o.DatasetPath, "YAML dataset file; empty runs the built-in questions")
	cmd.Flags().StringVar(&o.Category, "category", o.Category, "Only run questions of this category")
	cmd.Flags().StringVar(&o.Difficulty, "difficulty", o.Difficulty, "Only run questions of this difficulty: easy, medium or hard")
	cmd.Flags().IntVar(&o.Num, "num", o.Num, "Randomly sample this many questions; 0 runs all")

	return cmd
}

func NewEvalOptions(f util.Factory, ioStreams util.IOStreams) *EvalOptions {
	return &EvalOptions{
		factory:    f,
		IOStreams:  ioStreams,
		ServerAddr: "http://localhost:8000",
	}
}

func (o *EvalOptions) Complete() error {
	if !strings.HasPrefix(o.ServerAddr, "http://") && !strings.HasPrefix(o.ServerAddr, "https://") {
		o.ServerAddr = "http://" + o.ServerAddr
	}
	return nil
}

func (o *EvalOptions) Run(ctx context.Context) error {
	cases, err := o.loadCases()
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("no evaluation cases match the given filters")
	}

	client := util.NewAugurClient(o.ServerAddr, o.Token, o.factory.HTTPClient())

	passed := 0
	total := len(cases)
	scores := map[string][]float64{}

	for i, c := range cases {
		fmt.Fprintf(o.Out, "--- Running Case %d/%d: %s ---\n", i+1, total, c.Question)

		res, err := client.Query(ctx, c.Question)
		if err != nil {
			fmt.Fprintf(o.Out, "Error running case: %v\n\n", err)
			continue
		}

		// An agent failure arrives as an empty answer, which simply
		// cannot contain the expected keywords.
		v := dataset.ValidateAnswerKeywords(res.Answer, c.ExpectedAnswerKeywords)
		scores[c.Category] = append(scores[c.Category], v.Score)

		if v.Passed() {
			passed++
			fmt.Fprintf(o.Out, "Result: PASSED\n\n")
		} else {
			fmt.Fprintf(o.Out, "Result: FAILED (missing: %s)\n\n", strings.Join(v.Missing, ", "))
		}
	}

	fmt.Fprintln(o.Out, "--- EVALUATION SUMMARY ---")
	fmt.Fprintf(o.Out, "Passed %d/%d cases (%.2f%% accuracy)\n", passed, total, float64(passed)/float64(total)*100)

	if len(scores) > 0 {
		cats := make([]string, 0, len(scores))
		for cat := range scores {
			cats = append(cats, cat)
		}
		sort.Strings(cats)

		fmt.Fprintln(o.Out, "\n=== CATEGORY BREAKDOWN ===")
		for _, cat := range cats {
			sum := 0.0
			for _, s := range scores[cat] {
				sum += s
			}
			fmt.Fprintf(o.Out, "%s: %d questions, answer score: %.2f\n", cat, len(scores[cat]), sum/float64(len(scores[cat])))
		}
	}

	if failed := total - passed; failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, total)
	}
	return nil
}

func (o *EvalOptions) loadCases() ([]dataset.Case, error) {
	cases := dataset.Questions()
	if o.DatasetPath != "" {
		var err error
		cases, err = dataset.LoadDataset(o.DatasetPath)
		if err != nil {
			return nil, err
		}
	}
	cases = dataset.ByCategory(cases, o.Category)
	cases = dataset.ByDifficulty(cases, o.Difficulty)
	cases = dataset.Sample(cases, o.Num)
	return cases, nil
}
