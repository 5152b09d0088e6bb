package main

import (
	"os"

	"github.com/roboco-io/hwpmodel/internal/cli"
)

// 빌드 시 -ldflags "-X main.version=..."로 설정
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
