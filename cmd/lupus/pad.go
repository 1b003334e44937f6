package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/werewolves/lupus/internal/textpad"
)

var padCmd = &cobra.Command{
	Use:   "pad",
	Short: "Print padded background messages",
	Long: `Print the repeated text a section uses for its background message.

"edit" prints the padding the editor preview shows; "save" prints the
markup stored in saved pages, joined with &#160;.`,
}

var padEditCmd = &cobra.Command{
	Use:   "edit [message]",
	Short: "Pad a message the way the editor preview does",
	Run: func(cmd *cobra.Command, args []string) {
		printPadding(cmd, textpad.EditGenerator(), strings.Join(args, " "))
	},
}

var padSaveCmd = &cobra.Command{
	Use:   "save [message]",
	Short: "Pad a message the way saved pages do",
	Run: func(cmd *cobra.Command, args []string) {
		printPadding(cmd, textpad.SaveGenerator(), strings.Join(args, " "))
	},
}

func printPadding(cmd *cobra.Command, gen textpad.Generator, message string) {
	out := gen.Generate(message)
	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		fmt.Fprintf(cmd.ErrOrStderr(), "copies=%d final_index=%d length=%d\n",
			gen.Repetitions(message), gen.FinalIndex(message), textpad.Length(out))
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
}

func init() {
	padCmd.PersistentFlags().Bool("stats", false, "Print repetition count and length to stderr")

	padCmd.AddCommand(padEditCmd)
	padCmd.AddCommand(padSaveCmd)
	rootCmd.AddCommand(padCmd)
}
