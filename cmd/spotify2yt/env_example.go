package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"spotify2yt/internal/i18n"
)

const envExampleFile = ".env.example"

func generateEnvExample(cmd *cobra.Command) error {
	content := generateEnvExampleContent(cmd)

	if err := os.WriteFile(envExampleFile, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", envExampleFile, err)
	}

	localizer := i18n.NewLocalizer(viper.GetString("language"))
	newConsole(cmd.OutOrStdout(), localizer).Success("output.env_example", envExampleFile)
	return nil
}

func generateEnvExampleContent(cmd *cobra.Command) string {
	var content strings.Builder

	content.WriteString("# =============================================================================\n")
	content.WriteString("# spotify2yt Configuration\n")
	content.WriteString("# =============================================================================\n")
	content.WriteString("#\n")
	content.WriteString("# Copy this file to .env and update with your values\n")
	content.WriteString("# All environment variables have CLI flag equivalents (use --help to see them)\n")
	content.WriteString("#\n")
	fmt.Fprintf(&content, "# Format: %s_<SETTING>=value\n", envPrefix)
	content.WriteString("# CLI equivalent: --<setting>\n")
	content.WriteString("#\n\n")

	writeEnvSection(&content, cmd, "Download Settings",
		"output", "format", "quality")
	writeEnvSection(&content, cmd, "Output Files",
		"batch-file", "script-file", "summary-file", "batch-only")
	writeEnvSection(&content, cmd, "Dependencies",
		"no-deps-check", "install-deps", "deps-timeout-secs")
	writeEnvSection(&content, cmd, "Download History",
		"history-db", "history-size")
	writeEnvSection(&content, cmd, "Console and Logging",
		"language", "preview-size", "log-level", "metrics-file")

	return content.String()
}

func flagToEnvVar(flagName string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func getDefaultValueString(cmd *cobra.Command, flagName string) string {
	if f := cmd.PersistentFlags().Lookup(flagName); f != nil {
		return f.DefValue
	}
	return ""
}

func writeEnvSection(content *strings.Builder, cmd *cobra.Command, title string, flagNames ...string) {
	content.WriteString("# -----------------------------------------------------------------------------\n")
	fmt.Fprintf(content, "# %s\n", title)
	content.WriteString("# -----------------------------------------------------------------------------\n")
	fmt.Fprintf(content, "# CLI: --%s\n", strings.Join(flagNames, ", --"))

	for _, name := range flagNames {
		usage := ""
		if f := cmd.PersistentFlags().Lookup(name); f != nil {
			usage = f.Usage
		}
		fmt.Fprintf(content, "%s=%s    # %s\n", flagToEnvVar(name), getDefaultValueString(cmd, name), usage)
	}
	content.WriteString("\n")
}
