package main

import (
	"fmt"
	"os"

	"github.com/basenana/hanfts/cmd/apps"
	"github.com/basenana/hanfts/utils"
	"github.com/basenana/hanfts/utils/logger"
)

func main() {
	logger.InitLogger()
	defer logger.Sync()
	utils.HandleUserSignal()

	if err := apps.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
