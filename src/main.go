package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	cli = kingpin.New("vulcan", windowTitle+".")

	configPath = cli.Flag("config", "Configuration file (.json or .yaml).").Short('c').
			Envar("VULCAN_CONFIG").Default("./config.json").String()
	driverFlag = cli.Flag("driver", "Database driver: sqlite3, mysql or postgres.").String()
	dsnFlag    = cli.Flag("dsn", "Database file or connection string.").String()
	verbose    = cli.Flag("verbose", "Enable debug logging.").Short('v').Bool()

	guiCmd   = cli.Command("gui", "Open the data management window.").Default()
	initCmd  = cli.Command("init", "Create the vulcanization tables if they are missing.")
	dumpCmd  = cli.Command("dump", "Print a table to the console.")
	dumpName = dumpCmd.Arg("table", "Table to print.").Required().Enum(tableNames()...)
)

func main() {
	command := kingpin.MustParse(cli.Parse(os.Args[1:]))
	cli.FatalIfError(run(command), "")
}

// run executes one command. Errors come back here rather than exiting so the
// database is always closed.
func run(command string) error {
	// Load the configuration, flags win over the file
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *driverFlag != "" {
		cfg.Driver = *driverFlag
	}
	if *dsnFlag != "" {
		cfg.DSN = *dsnFlag
	}

	logger := newLogger(cfg.LogLevel, *verbose)

	// Set up the database
	store, err := openStore(cfg.Driver, cfg.DSN, logger)
	if err != nil {
		return errors.Wrap(err, "unable to open database")
	}
	defer store.Close()

	switch command {
	case initCmd.FullCommand():
		if err := store.initSchema(); err != nil {
			return err
		}
		logger.Info("tables ready")
	case dumpCmd.FullCommand():
		return dumpTable(store, *dumpName, os.Stdout)
	case guiCmd.FullCommand():
		runGUI(cfg, store, logger)
	}
	return nil
}

func runGUI(cfg *Config, store *Store, logger *logrus.Logger) {
	// Initialize the application
	a := app.New()

	// Create the main window
	win := a.NewWindow(windowTitle)

	// Set the content of the window
	b := newBrowser(win, store, logger)
	win.SetContent(b.createUI())

	// Set a default window size
	win.Resize(fyne.NewSize(cfg.Width, cfg.Height))

	// Show the window and start the application
	win.ShowAndRun()
}
