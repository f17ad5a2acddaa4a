package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/cli/backups"
	"github.com/julianstephens/jagruk/internal/cli/finance"
	"github.com/julianstephens/jagruk/internal/cli/goals"
	"github.com/julianstephens/jagruk/internal/cli/habits"
	"github.com/julianstephens/jagruk/internal/cli/journal"
	"github.com/julianstephens/jagruk/internal/cli/profile"
	"github.com/julianstephens/jagruk/internal/cli/system"
	"github.com/julianstephens/jagruk/internal/config"
	"github.com/julianstephens/jagruk/internal/constants"
	apperrors "github.com/julianstephens/jagruk/internal/errors"
	"github.com/julianstephens/jagruk/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"Storage DSN: a SQLite path, a .json file, postgres://, redis:// or :memory:. PostgreSQL credentials must come from the OS keyring or JAGRUK_DB_CONNECTION." type:"string"`
	ConfigFile string `name:"config-file" help:"Path to a TOML config file." type:"path"`
	Debug      bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize storage and complete onboarding."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the local JSON API."`
	Theme   system.ThemeCmd   `cmd:"" help:"Show or set the UI theme."`
	Reset   system.ResetCmd   `cmd:"" help:"Erase all data and start over."`
	Status  journal.StatusCmd `cmd:"" help:"Show today's status."`
	Pulse   journal.PulseCmd  `cmd:"" help:"Show the life pulse of recent ratings."`

	Entry struct {
		Show   journal.EntryShowCmd   `cmd:"" help:"Show a day's entry." default:"1"`
		Rate   journal.EntryRateCmd   `cmd:"" help:"Rate a day from 1 to 10."`
		Energy journal.EntryEnergyCmd `cmd:"" help:"Record energy from 1 to 5."`
		Mood   journal.EntryMoodCmd   `cmd:"" help:"Record the day's mood."`
		Note   journal.EntryNoteCmd   `cmd:"" help:"Write an intention, memory, gratitude or prompt answer."`
		Song   journal.EntrySongCmd   `cmd:"" help:"Record the song of the day."`
		Seal   journal.EntrySealCmd   `cmd:"" help:"Seal a day so it can no longer be edited."`
	} `cmd:"" help:"Manage daily journal entries."`
	Todo struct {
		Add  journal.TodoAddCmd  `cmd:"" help:"Add a todo."`
		Done journal.TodoDoneCmd `cmd:"" help:"Toggle a todo's completion."`
		Rm   journal.TodoRmCmd   `cmd:"" help:"Remove a todo."`
		List journal.TodoListCmd `cmd:"" help:"List a day's todos." default:"1"`
	} `cmd:"" help:"Manage a day's todos."`
	Habit struct {
		List habits.HabitListCmd `cmd:"" help:"List habits with streaks." default:"1"`
		Add  habits.HabitAddCmd  `cmd:"" help:"Add a habit."`
		Rm   habits.HabitRmCmd   `cmd:"" help:"Remove a habit."`
		Mark habits.HabitMarkCmd `cmd:"" help:"Mark whether a habit occurred."`
		Log  habits.HabitLogCmd  `cmd:"" help:"Show a habit's 30-day trend."`
	} `cmd:"" help:"Manage habits and habit tracking."`
	Txn struct {
		Add   finance.TxnAddCmd   `cmd:"" help:"Record a transaction."`
		Quick finance.TxnQuickCmd `cmd:"" help:"Record a habit purchase at the category price."`
		List  finance.TxnListCmd  `cmd:"" help:"List recent transactions." default:"1"`
	} `cmd:"" help:"Record money in and out."`
	Finance struct {
		Month  finance.MonthCmd  `cmd:"" help:"Show the monthly summary." default:"1"`
		Week   finance.WeekCmd   `cmd:"" help:"Show spend for the last 7 days."`
		Ledger finance.LedgerCmd `cmd:"" help:"Show the ledger grouped by day."`
	} `cmd:"" help:"Spending reports."`
	Category struct {
		List  finance.CategoryListCmd  `cmd:"" help:"List spending categories." default:"1"`
		Add   finance.CategoryAddCmd   `cmd:"" help:"Add a category."`
		Rm    finance.CategoryRmCmd    `cmd:"" help:"Remove a category."`
		Price finance.CategoryPriceCmd `cmd:"" help:"Override a category's price."`
	} `cmd:"" help:"Manage spending categories."`
	Goal struct {
		Add      goals.GoalAddCmd      `cmd:"" help:"Add a goal."`
		List     goals.GoalListCmd     `cmd:"" help:"List goals." default:"1"`
		Progress goals.GoalProgressCmd `cmd:"" help:"Set a goal's progress."`
		Toggle   goals.GoalToggleCmd   `cmd:"" help:"Toggle a goal's completion."`
		Rm       goals.GoalRmCmd       `cmd:"" help:"Remove a goal."`
	} `cmd:"" help:"Manage long-term goals."`
	Profile struct {
		Show profile.ProfileShowCmd `cmd:"" help:"Show the profile." default:"1"`
		Set  profile.ProfileSetCmd  `cmd:"" help:"Update profile settings."`
	} `cmd:"" help:"Manage the profile."`
	Export backups.ExportCmd `cmd:"" help:"Export data as a JSON backup or CSV ledger."`
	Import backups.ImportCmd `cmd:"" help:"Replace all data with a JSON backup."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a local backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List local backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore a local backup."`
	} `cmd:"" help:"Manage local backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show where the connection string comes from."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal discipline tracker: journal, habits, money and goals"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Config != "" {
		cfg.Storage.DSN = CLI.Config
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		apperrors.Fatal(apperrors.WithHint(err, "check that the config directory is writable"))
	}

	store, err := cli.NewStore(cfg.Storage.DSN)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
		Out:    os.Stdout,
		In:     os.Stdin,
	}

	runErr := ctx.Run(appCtx)
	closeErr := appCtx.Close()
	if err := errors.Join(runErr, closeErr); err != nil {
		apperrors.Fatal(err)
	}
}
