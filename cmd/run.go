package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tattybubutashtanova/histmatch/bot"
)

var token string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Discord bot.",
	Run: func(cmd *cobra.Command, args []string) {
		migrateDB()
		if token != "" {
			viper.Set("bot.token", token)
		}
		bot.Run(bot.Config{
			Token:   viper.GetString("bot.token"),
			DB:      viper.GetString("db"),
			Prefix:  viper.GetString("bot.prefix"),
			Preview: viper.GetUint("bot.preview"),
			Fetcher: newFetcher(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&token, "token", "t", "", "discord token")
}
