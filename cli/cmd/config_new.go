package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/structs"
	defaults "github.com/mcuadros/go-defaults"
	"github.com/mtsuei/windowplane/config"
	toml "github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configNewAsEnvFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the windowplane configuration",
}

var configNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Print a configuration filled with the defaults",
	Long: `Print the default configuration as a TOML file to use with --config,
	or with --env as the WP_ environment variables read at startup.`,
	Run: func(cmd *cobra.Command, args []string) {
		fresh := &config.Configuration{}
		defaults.SetDefaults(fresh)

		var err error
		if configNewAsEnvFlag {
			err = writeEnvExports(cmd.OutOrStdout(), fresh)
		} else {
			err = writeToml(cmd.OutOrStdout(), fresh)
		}
		if err != nil {
			log.WithFields(logrus.Fields{
				"Error": err,
			}).Fatal("Unable to print the configuration")
		}
	},
}

func init() {
	configNewCmd.Flags().BoolVar(&configNewAsEnvFlag, "env", false, "print environment variable exports instead of TOML")
	configCmd.AddCommand(configNewCmd)
}

func writeToml(w io.Writer, c *config.Configuration) error {
	btes, err := toml.Marshal(*c)
	if err != nil {
		return err
	}
	_, err = w.Write(btes)
	return err
}

// writeEnvExports prints one sorted `export WP_...="value"` line per setting
func writeEnvExports(w io.Writer, c *config.Configuration) error {
	vars := asEnvVariables(c, envPrefix)
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "export %s=%q\n", name, vars[name]); err != nil {
			return err
		}
	}
	return nil
}

// asEnvVariables flattens the settings of o into NAME -> value, nested
// section names joined with '_' under the upper-cased prefix.
func asEnvVariables(o interface{}, prefix string) map[string]string {
	r := map[string]string{}
	for _, f := range structs.Fields(o) {
		name := strings.ToUpper(f.Name())
		if prefix != "" {
			name = strings.ToUpper(prefix) + "_" + name
		}

		if structs.IsStruct(f.Value()) {
			for k, v := range asEnvVariables(f.Value(), name) {
				r[k] = v
			}
			continue
		}
		r[name] = fmt.Sprintf("%v", f.Value())
	}
	return r
}
