package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/tattybubutashtanova/histmatch/input"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "histmatch",
	Short: "Grayscale histogram matching",
	Long: `Remaps the gray levels of an image so that its histogram matches the one of a
reference image, either given directly or saved earlier under a name.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.histmatch.yaml)")
	rootCmd.PersistentFlags().String("db", "histmatch.sqlite", "database (default is ./histmatch.sqlite)")
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))

	viper.SetDefault("jpeg.quality", 95)
	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.max_bytes", input.DefaultMaxBytes)
	viper.SetDefault("bot.prefix", ".")
	viper.SetDefault("bot.preview", 1024)
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".histmatch" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".histmatch")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("HM")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
