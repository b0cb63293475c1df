// Command agentgrid is the CLI companion to the AgentGrid control plane. It
// loads a topology configuration and checks it the same way a session would
// before startup, so users can fix every violation in one pass without
// running any agent work.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentgrid"
	"github.com/hupe1980/agentgrid/config"
	"github.com/hupe1980/agentgrid/role"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "agentgrid",
	Short:         "Validate and inspect multi-agent topology configurations",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate declared agents against the role map",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		roles, err := cfg.RoleSchemas()
		if err != nil {
			return err
		}

		violations := role.Validate(roles, cfg.AgentSpecs())
		if len(violations) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return nil
		}
		for _, v := range violations {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", v)
		}
		return fmt.Errorf("%d violation(s) found", len(violations))
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the declared role schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		roles, err := cfg.RoleSchemas()
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(roles))
		for id := range roles {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			schema := roles[id]
			fmt.Fprintf(cmd.OutOrStdout(), "%s\ttype=%s\tcardinality=%s\trequired=[%s]\n",
				id, schema.Type, schema.Cardinality, strings.Join(schema.RequiredCapabilities, ","))
		}
		return nil
	},
}

var materialized bool

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the declared agent instances",
	Long: `List the declared agent instances. With --materialized the dynamic
registry is merged over the static declarations, showing the agent set a
session would actually start with.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		agents := cfg.AgentSpecs()
		if materialized {
			plane, err := agentgrid.FromConfig(cfg)
			if err != nil {
				return err
			}
			agents = plane.Materialize()
		}
		for _, a := range agents {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\trole=%s\tcapabilities=[%s]\n",
				a.Name, a.RoleID, strings.Join(a.Capabilities, ","))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "agentgrid.yaml", "path to the topology configuration file")
	agentsCmd.Flags().BoolVar(&materialized, "materialized", false, "merge the dynamic registry over the static declarations")
	rootCmd.AddCommand(validateCmd, rolesCmd, agentsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
