package commands

import (
	"github.com/charmbracelet/log"

	"github.com/simonhull/pdemeta/internal/config"
	"github.com/simonhull/pdemeta/internal/output"
)

// App carries what every command needs once flags are parsed. The root
// command fills it in PersistentPreRunE.
type App struct {
	Root   string
	Config *config.Config
	Logger *log.Logger
	Out    *output.Printer
}
