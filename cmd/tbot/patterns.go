package main

import (
	"fmt"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/editor"
	"github.com/agronomthe6th/tbot-v2-sub001/internal/logger"
	"github.com/spf13/cobra"
)

var (
	patternID          int64
	patternName        string
	patternCategory    string
	patternRegex       string
	patternPriority    int
	patternDescription string
	patternActive      bool
	patternText        string
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage signal-parsing patterns",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all patterns",
	RunE:  runPatternsList,
}

var patternsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new pattern",
	RunE:  runPatternsSave,
}

var patternsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an existing pattern",
	RunE:  runPatternsSave,
}

var patternsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a pattern",
	RunE:  runPatternsDelete,
}

var patternsTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test a pattern against sample text",
	RunE:  runPatternsTest,
}

func init() {
	for _, cmd := range []*cobra.Command{patternsCreateCmd, patternsUpdateCmd} {
		cmd.Flags().StringVar(&patternName, "name", "", "unique pattern name")
		cmd.Flags().StringVar(&patternCategory, "category", "", "pattern category")
		cmd.Flags().StringVar(&patternRegex, "pattern", "", "regex source")
		cmd.Flags().IntVar(&patternPriority, "priority", 0, "priority 0-1000, higher evaluated first")
		cmd.Flags().StringVar(&patternDescription, "description", "", "optional description")
		cmd.Flags().BoolVar(&patternActive, "active", true, "whether the pattern is active")
		cmd.MarkFlagRequired("name")
		cmd.MarkFlagRequired("category")
		cmd.MarkFlagRequired("pattern")
	}

	patternsUpdateCmd.Flags().Int64Var(&patternID, "id", 0, "pattern ID")
	patternsUpdateCmd.MarkFlagRequired("id")

	patternsDeleteCmd.Flags().Int64Var(&patternID, "id", 0, "pattern ID")
	patternsDeleteCmd.MarkFlagRequired("id")

	patternsTestCmd.Flags().StringVar(&patternRegex, "pattern", "", "regex source")
	patternsTestCmd.Flags().StringVar(&patternText, "text", "", "sample text")
	patternsTestCmd.MarkFlagRequired("pattern")
	patternsTestCmd.MarkFlagRequired("text")

	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsCreateCmd)
	patternsCmd.AddCommand(patternsUpdateCmd)
	patternsCmd.AddCommand(patternsDeleteCmd)
	patternsCmd.AddCommand(patternsTestCmd)
	rootCmd.AddCommand(patternsCmd)
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	log := logger.Must("", debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	cli := newClient(cfg, nil, log)

	patterns, err := cli.ListPatterns(cmd.Context())
	if err != nil {
		return err
	}

	for _, p := range patterns {
		active := " "
		if p.IsActive {
			active = "*"
		}
		fmt.Printf("%s %4d  %-16s  prio %4d  %-24s  %s\n",
			active, p.ID, p.Category, p.Priority, p.Name, p.Pattern)
	}
	fmt.Printf("%d patterns\n", len(patterns))
	return nil
}

func runPatternsSave(cmd *cobra.Command, args []string) error {
	log := logger.Must("", debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	cli := newClient(cfg, nil, log)

	ed := editor.New(cli, log)
	ed.SetForm(editor.Form{
		ID:          patternID,
		Name:        patternName,
		Category:    core.Category(patternCategory),
		Pattern:     patternRegex,
		Priority:    patternPriority,
		Description: patternDescription,
		IsActive:    patternActive,
	})

	saved, err := ed.Save(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("saved pattern %d: %s (%s)\n", saved.ID, saved.Name, saved.Category)
	return nil
}

func runPatternsDelete(cmd *cobra.Command, args []string) error {
	log := logger.Must("", debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	cli := newClient(cfg, nil, log)

	if err := cli.DeletePattern(cmd.Context(), patternID); err != nil {
		return err
	}
	fmt.Printf("deleted pattern %d\n", patternID)
	return nil
}

func runPatternsTest(cmd *cobra.Command, args []string) error {
	log := logger.Must("", debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	cli := newClient(cfg, nil, log)

	ed := editor.New(cli, log)
	ed.SetForm(editor.Form{Pattern: patternRegex})

	result, highlighted, err := ed.Test(cmd.Context(), patternText)
	if err != nil {
		return err
	}

	fmt.Printf("%d matches\n", result.MatchesCount)
	if highlighted != "" {
		fmt.Println(highlighted)
	}
	for _, m := range result.Matches {
		fmt.Printf("  [%d:%d] %q", m.Start, m.End, m.Match)
		if len(m.Groups) > 0 {
			fmt.Printf("  groups %q", m.Groups)
		}
		fmt.Println()
	}
	return nil
}
