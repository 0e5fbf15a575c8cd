package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	emailPkg "lunchpick/internal/adapters/email"
	"lunchpick/internal/adapters/transport"
	"lunchpick/internal/application/orchestrators"
	"lunchpick/internal/application/projections"
	"lunchpick/internal/application/session"
	"lunchpick/internal/config"
	"lunchpick/internal/domain/workflow"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `lunchctl %s - lunchtime signup coordination

usage: lunchctl <command> [flags]

commands:
  board       show this week's occupancy board
  roster      list everyone signed up this week
  signup      submit or update your slot picks
  actions     list the organizer actions available right now
  send        send an organizer command to the backend
  deliver     email an announcement directly to the list
`, version)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()
	var runErr error
	switch os.Args[1] {
	case "board":
		runErr = runBoard(ctx, cfg, os.Args[2:])
	case "roster":
		runErr = runRoster(ctx, cfg)
	case "signup":
		runErr = runSignup(ctx, cfg, os.Args[2:])
	case "actions":
		runErr = runActions(ctx, cfg)
	case "send":
		runErr = runSend(ctx, cfg, os.Args[2:])
	case "deliver":
		runErr = runDeliver(ctx, cfg, os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
	if runErr != nil {
		fatal(runErr)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "lunchctl:", err)
	os.Exit(1)
}

// loadSession fetches the week's snapshot with the given guid.
func loadSession(ctx context.Context, cfg config.Config, guid string) (*session.Session, error) {
	snap, err := transport.NewClient(cfg.BackendURL, guid).Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return session.New(snap), nil
}

func poster(cfg config.Config, guid string) orchestrators.CommandPoster {
	if cfg.DryRun {
		return transport.NewNoopPoster()
	}
	return transport.NewClient(cfg.BackendURL, guid)
}

func sender(cfg config.Config) emailPkg.Sender {
	if cfg.DryRun || cfg.ResendKey == "" {
		return emailPkg.NewNoopSender()
	}
	return emailPkg.NewResendSender(cfg.ResendKey, cfg.FromAddress)
}

func runBoard(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("board", flag.ExitOnError)
	as := fs.String("as", "", "identity to highlight, e.g. 'Jane Doe <jane@x.com>'")
	fs.Parse(args)

	if err := cfg.ValidateForSignup(); err != nil {
		return err
	}
	sess, err := loadSession(ctx, cfg, cfg.GUID)
	if err != nil {
		return err
	}

	query := projections.GetBoardQuery{Games: sess.Snapshot.Games, Roster: sess.Roster}
	if *as != "" {
		sess.SetEntry(*as)
		query.Current = sess.CurrentParticipant()
	}
	board := projections.QueryGetBoard(query)

	fmt.Printf("week of %s\n", sess.Snapshot.WeekOf)
	if line := sess.StatusLine(); line != "" {
		fmt.Println(line)
	}
	fmt.Print(renderBoard(board))
	return nil
}

func runRoster(ctx context.Context, cfg config.Config) error {
	if err := cfg.ValidateForSignup(); err != nil {
		return err
	}
	sess, err := loadSession(ctx, cfg, cfg.GUID)
	if err != nil {
		return err
	}
	overview := projections.QueryGetRosterOverview(projections.GetRosterOverviewQuery{
		Roster:     sess.Roster,
		Historical: sess.Snapshot.HistoricalParticipants,
	})
	fmt.Print(renderRoster(overview))
	return nil
}

func runSignup(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	as := fs.String("as", "", "your identity, e.g. 'Jane Doe <jane@x.com>'")
	keys := fs.String("keys", "", "slot keys, e.g. 'A,C-E,!D', 'all', or 'clear'")
	comments := fs.String("comments", "", "optional comment for the organizer")
	fs.Parse(args)

	if err := cfg.ValidateForSignup(); err != nil {
		return err
	}
	if *as == "" || *keys == "" {
		return fmt.Errorf("signup needs -as and -keys")
	}

	sess, err := loadSession(ctx, cfg, cfg.GUID)
	if err != nil {
		return err
	}

	res, err := orchestrators.ExecuteSubmitSelections(ctx, orchestrators.SubmitSelectionsInput{
		Identity: *as,
		Keys:     *keys,
		Comments: *comments,
	}, orchestrators.SubmitSelectionsDeps{
		Session:    sess,
		Poster:     poster(cfg, cfg.GUID),
		GenerateID: func() string { return uuid.New().String() },
		Now:        time.Now,
	})
	if err != nil {
		return err
	}

	fmt.Printf("selection %s\n", res.Summary)
	if res.IsNew {
		fmt.Println(newStyle.Render("welcome! first time signing up"))
	}
	return nil
}

func runActions(ctx context.Context, cfg config.Config) error {
	if err := cfg.ValidateForAdmin(); err != nil {
		return err
	}
	sess, err := loadSession(ctx, cfg, cfg.BossGUID)
	if err != nil {
		return err
	}
	fmt.Print(renderActions(sess.Snapshot.State, sess.VisibleActions()))
	return nil
}

// cliName maps an organizer action to its subcommand flag value.
func cliName(action workflow.Action) string {
	return strings.ReplaceAll(strings.ToLower(string(action)), " ", "-")
}

func actionFromCLI(name string) (workflow.Action, error) {
	for _, action := range workflow.Actions {
		if cliName(action) == name {
			return action, nil
		}
	}
	return "", fmt.Errorf("unknown action %q (one of: invite, no-invite, badger, game-on, no-game)", name)
}

func runSend(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	name := fs.String("action", "", "invite, no-invite, badger, game-on, or no-game")
	key := fs.String("key", "", "winning slot key (game-on only)")
	adjusted := fs.String("time", "", "adjusted start time, e.g. '11:30am' (game-on only)")
	note := fs.String("note", "", "extra text for the announcement")
	fs.Parse(args)

	if err := cfg.ValidateForAdmin(); err != nil {
		return err
	}
	action, err := actionFromCLI(*name)
	if err != nil {
		return err
	}

	sess, err := loadSession(ctx, cfg, cfg.BossGUID)
	if err != nil {
		return err
	}

	res, err := orchestrators.ExecuteSendAdminCommand(ctx, orchestrators.SendAdminCommandInput{
		Action:             action,
		AdditionalContent:  *note,
		GameOnGameKey:      strings.ToUpper(*key),
		GameOnAdjustedTime: *adjusted,
	}, orchestrators.SendAdminCommandDeps{
		Session:    sess,
		Poster:     poster(cfg, cfg.BossGUID),
		SignupURL:  cfg.SignupURL(),
		GenerateID: func() string { return uuid.New().String() },
		Now:        time.Now,
	})
	if err != nil {
		return err
	}

	fmt.Printf("sent %s\n", res.Command.CommandType)
	fmt.Println(headerStyle.Render(res.Message.Subject))
	fmt.Println(res.Message.Markdown)
	return nil
}

func runDeliver(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("deliver", flag.ExitOnError)
	name := fs.String("action", "", "invite, no-invite, badger, game-on, or no-game")
	key := fs.String("key", "", "winning slot key (game-on only)")
	adjusted := fs.String("time", "", "adjusted start time (game-on only)")
	note := fs.String("note", "", "extra text for the announcement")
	to := fs.String("to", "", "comma separated recipients; empty emails everyone known")
	fs.Parse(args)

	if err := cfg.ValidateForAdmin(); err != nil {
		return err
	}
	action, err := actionFromCLI(*name)
	if err != nil {
		return err
	}

	sess, err := loadSession(ctx, cfg, cfg.BossGUID)
	if err != nil {
		return err
	}

	var recipients []string
	for _, addr := range strings.Split(*to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}

	res, err := orchestrators.ExecuteDeliverAnnouncement(ctx, orchestrators.DeliverAnnouncementInput{
		Action:             action,
		AdditionalContent:  *note,
		GameOnGameKey:      strings.ToUpper(*key),
		GameOnAdjustedTime: *adjusted,
		To:                 recipients,
	}, orchestrators.DeliverAnnouncementDeps{
		Session:   sess,
		Sender:    sender(cfg),
		SignupURL: cfg.SignupURL(),
		From:      cfg.FromAddress,
		ReplyTo:   cfg.ReplyTo,
		Now:       time.Now,
	})
	if err != nil {
		return err
	}

	fmt.Printf("delivered %q to %d recipients\n", res.Message.Subject, len(res.Recipients))
	return nil
}
