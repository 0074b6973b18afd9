package main

import (
	"fmt"

	"github.com/jackielii/authorpages"
	"github.com/jackielii/authorpages/internal/config"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [path]",
	Short: "Print the rewrite rules, or the query a path resolves to",
	Args:  cobra.MaximumNArgs(1),
	RunE:  printRules,
}

func printRules(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return fmt.Errorf("build rewrite rules: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprint(out, authorpages.PrintRules(a.rewrite.Rules()))
		return nil
	}
	q, err := a.rewrite.Match(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "rule:   %s => %s\n", q.Rule.Pattern, q.Rule.Target)
	fmt.Fprintf(out, "query:  %s\n", q.Vars.Encode())
	if tmpl, err := a.server.SelectTemplate(q); err == nil {
		fmt.Fprintf(out, "template: %s\n", tmpl)
	}
	return nil
}
