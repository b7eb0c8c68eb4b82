// Package ask implements the sibylctl ask command.
package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sibylline/sibyl/internal/sibylctl/cmd/util"
)

const askExample = `  # Ask the single analyst agent
  sibylctl ask "How many customers are from the USA?"

  # Run the question through the SQL, analytics and reporting pipeline
  sibylctl ask --multi-agent "Which product category generates the most revenue?"

  # Connect to a specific sibyld server
  sibylctl ask --server=http://localhost:8000 "Which employee handled the most orders?"`

type AskOptions struct {
	ServerAddr string
	Token      string
	MultiAgent bool
	ShowRunID  bool

	factory util.Factory
	util.IOStreams
}

func NewCmdAsk(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := NewAskOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "ask <question>",
		DisableFlagsInUseLine: true,
		Short:                 "Ask the business intelligence agent a question",
		Long: `
Send a question to the sibyld server and print the answer.

By default the single analyst agent handles the question. With
--multi-agent the question runs through the three stage pipeline and
the final report is printed along with the stage outputs.`,
		Example: askExample,
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete())
			util.CheckErr(o.Run(cmd.Context(), args))
		},
	}

	cmd.Flags().StringVar(&o.ServerAddr, "server", o.ServerAddr, "Sibyld HTTP server address")
	cmd.Flags().StringVar(&o.Token, "token", o.Token, "Bearer token sent with every request")
	cmd.Flags().BoolVar(&o.MultiAgent, "multi-agent", o.MultiAgent, "Run the question through the multi-agent pipeline")
	cmd.Flags().BoolVar(&o.ShowRunID, "show-run-id", o.ShowRunID, "Print the run id of the answer")

	return cmd
}

func NewAskOptions(f util.Factory, ioStreams util.IOStreams) *AskOptions {
	return &AskOptions{
		factory:    f,
		IOStreams:  ioStreams,
		ServerAddr: "http://localhost:8000",
	}
}

func (o *AskOptions) Complete() error {
	// Ensure server address has schema
	if !strings.HasPrefix(o.ServerAddr, "http://") && !strings.HasPrefix(o.ServerAddr, "https://") {
		o.ServerAddr = "http://" + o.ServerAddr
	}
	return nil
}

func (o *AskOptions) Run(ctx context.Context, args []string) error {
	client := util.NewAugurClient(o.ServerAddr, o.Token, o.factory.HTTPClient())
	question := strings.Join(args, " ")

	if o.MultiAgent {
		return o.runPipeline(ctx, client, question)
	}
	return o.runSingle(ctx, client, question)
}

func (o *AskOptions) runSingle(ctx context.Context, client *util.AugurClient, question string) error {
	res, err := client.Query(ctx, question)
	if err != nil {
		return err
	}
	if res.Error != nil {
		return fmt.Errorf("%s (run %s)", *res.Error, res.RunID)
	}

	fmt.Fprintln(o.Out, res.Answer)
	if o.ShowRunID {
		fmt.Fprintf(o.Out, "run_id: %s\n", res.RunID)
	}
	return nil
}

func (o *AskOptions) runPipeline(ctx context.Context, client *util.AugurClient, question string) error {
	res, err := client.MultiAgentQuery(ctx, question)
	if err != nil {
		return err
	}
	if res.Error != nil {
		return fmt.Errorf("%s (run %s)", *res.Error, res.RunID)
	}

	fmt.Fprintf(o.Out, "Agent flow: %s\n\n", strings.Join(res.AgentFlow, " -> "))
	fmt.Fprintf(o.Out, "SQL findings:\n%s\n\n", res.SQLFindings)
	fmt.Fprintf(o.Out, "Analytics insights:\n%s\n\n", res.AnalyticsInsights)
	fmt.Fprintf(o.Out, "Final report:\n%s\n", res.FinalReport)
	if o.ShowRunID {
		fmt.Fprintf(o.Out, "\nrun_id: %s\n", res.RunID)
	}
	return nil
}
