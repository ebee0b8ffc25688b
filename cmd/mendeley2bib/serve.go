package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	m2bmcp "github.com/gorewood/mendeley2bib/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	flags := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run mendeley2bib as a Model Context Protocol (MCP) server over stdio.

This exposes the library as MCP tools so an agent can look up folders and
pull biblatex entries without shelling out.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "mendeley2bib": {
        "command": "mendeley2bib",
        "args": ["serve"]
      }
    }
  }

Available tools: databases, folders, groups, convert`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSettings(cmd, *flags)
			if err != nil {
				return err
			}
			mapping, err := s.mapping()
			if err != nil {
				return err
			}
			server := m2bmcp.NewServer(buildVersion(), m2bmcp.Config{
				DataDir:  s.DataDir,
				Database: s.Database,
				Mapping:  mapping,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
	cmd.Flags().StringVarP(&flags.database, "database", "d", "", "Default database account name")
	cmd.Flags().StringVar(&flags.dataDir, "data-dir", "", "Mendeley Desktop data directory")
	cmd.Flags().StringP("mapping", "m", "", "YAML entry type mapping file")
	return cmd
}
