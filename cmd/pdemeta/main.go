package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/simonhull/pdemeta/internal/commands"
	"github.com/simonhull/pdemeta/internal/output"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		commands.RootCmd(),
		fang.WithVersion(commands.VersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(reportError),
	); err != nil {
		os.Exit(1)
	}
}

func reportError(w io.Writer, _ fang.Styles, err error) {
	output.New(w, false).Error(err.Error())
}
