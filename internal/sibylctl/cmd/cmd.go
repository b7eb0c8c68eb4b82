// Package cmd assembles the sibylctl command tree.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	genericapiserver "github.com/sibylline/sibyl/internal/pkg/server"
	"github.com/sibylline/sibyl/internal/sibylctl/cmd/ask"
	"github.com/sibylline/sibyl/internal/sibylctl/cmd/eval"
	cmdutil "github.com/sibylline/sibyl/internal/sibylctl/cmd/util"
	"github.com/sibylline/sibyl/pkg/utils/cliflag"
	"github.com/sibylline/sibyl/pkg/version"
)

// NewDefaultSibylCtlCommand creates the `sibylctl` command with default arguments.
func NewDefaultSibylCtlCommand() *cobra.Command {
	return NewSibylCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewSibylCtlCommand(in io.Reader, out, err io.Writer) *cobra.Command {
	// Parent command to which all subcommands are added.
	cmds := &cobra.Command{
		Use:   "sibylctl",
		Short: "sibylctl talks to a sibyld server",
		Long: fmt.Sprintf(`%s
		sibylctl is the CLI for the sibyl question answering service.

		It sends business intelligence questions to a running sibyld server,
		either to the single analyst agent or through the multi-agent pipeline,
		and runs the evaluation dataset against the server to score its answers.`, Banner()),
		Run: runHelp,
	}
	flags := cmds.PersistentFlags()
	flags.SetNormalizeFunc(cliflag.WarnWordSepNormalizeFunc) // Warn for "_" flags

	// Normalize all flags that are coming from other packages or pre-configurations
	flags.SetNormalizeFunc(cliflag.WordSepNormalizeFunc)

	addGlobalFlags(flags)

	_ = viper.BindPFlags(cmds.PersistentFlags())
	cobra.OnInitialize(func() {
		genericapiserver.LoadConfig(viper.GetString("config"), "sibylctl")
	})
	cmds.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	// From this point and forward we get warnings on flags that contain "_" separators
	cmds.SetGlobalNormalizationFunc(cliflag.WarnWordSepNormalizeFunc)

	ioStreams := cmdutil.IOStreams{In: in, Out: out, ErrOut: err}
	f := cmdutil.NewDefaultFactory()

	cmds.AddCommand(ask.NewCmdAsk(f, ioStreams))
	cmds.AddCommand(eval.NewCmdEval(f, ioStreams))
	cmds.AddCommand(newCmdVersion(out))

	return cmds
}

func runHelp(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}

func newCmdVersion(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print sibylctl version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out, version.Get().String())
		},
	}
}
