// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lupus",
	Short: "Lupus - block sites with decorative background messages",
	Long: `Lupus serves multi-site pages built from header and section blocks.

Sections can carry a background logo or a repeated background message,
padded so the text always fills the block. Each site has its own palette
and customizer settings.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
