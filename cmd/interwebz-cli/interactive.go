package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"interwebz-cli/internal/completion"
	"interwebz-cli/internal/console"
	"interwebz-cli/internal/features"
	"interwebz-cli/internal/history"
	"interwebz-cli/internal/repl"
	"interwebz-cli/internal/session"
	"interwebz-cli/internal/tui"

	"golang.org/x/term"
)

func runInteractive(root rootArgs, args []string) {
	fs, cli := newInteractiveFlagSet("interwebz-cli")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse args: %v", err)
	}
	cli.finalizePrompt(fs)

	cli.configOverrides = stringSlice(prependOverrides(root.overrides, []string(cli.configOverrides)))
	startInteractiveSession(cli, nil)
}

func startInteractiveSession(cli *interactiveArgs, seed *session.Record) {
	cfg, err := loadConfig(cli.cfgPath, []string(cli.configOverrides), cli.url)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if seed == nil && (cli.resumeSessionID != "" || cli.resumeLast) {
		rec, err := loadSessionRecord(cli.resumeSessionID, cli.resumeLast)
		if err != nil {
			log.Fatalf("failed to load session: %v", err)
		}
		seed = &rec
	}
	token := ""
	if seed != nil {
		token = seed.Token
		// token 只在签发它的代理上有效
		if strings.TrimSpace(cli.url) == "" && seed.Endpoint != "" {
			cfg.URL = seed.Endpoint
		}
	}

	client, wireCloser, err := newSessionClient(cfg, token)
	if err != nil {
		log.Fatalf("failed to create session client: %v", err)
	}
	defer wireCloser.Close()

	store := historyStore(cfg)
	seedHistory := initialHistory(store, seed)
	var sink console.HistorySink
	if store != nil {
		sink = store
	}

	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	banner := features.Enabled(cfg.Features, features.Banner)
	ctrlOpts := console.Options{
		Prompt:  cfg.Prompt,
		HelpURL: cfg.HelpURL,
		Client:  client,
		Browser: systemBrowser{},
		History: history.NewNavigator(seedHistory),
		Sink:    sink,
		Debug:   features.Enabled(cfg.Features, features.RawJSON),
	}
	log.WithField("endpoint", client.Endpoint()).Infof("interactive session start (tui=%t)", stdinTTY && stdoutTTY && !cli.plain)

	ctx := context.Background()
	var entries []string
	if stdinTTY && stdoutTTY && !cli.plain {
		out := tui.NewOutput(cfg.Prompt)
		ctrlOpts.Host = out
		result, err := tui.Run(tui.Options{
			Controller:     console.New(ctrlOpts),
			Output:         out,
			Completer:      completion.New(console.LocalCommands...),
			Endpoint:       client.Endpoint(),
			InitialCommand: cli.prompt,
			Banner:         banner,
			Inline:         cli.inline,
			Context:        ctx,
		})
		if err != nil {
			log.Fatalf("tui failed: %v", err)
		}
		entries = result.History
	} else {
		host := repl.NewScrollback(repl.ScrollbackOptions{
			Writer:       os.Stdout,
			Prompt:       cfg.Prompt,
			SuppressEcho: stdinTTY,
			ClearScreen:  stdoutTTY,
		})
		ctrlOpts.Host = host
		ctrl := console.New(ctrlOpts)
		if banner {
			ctrl.RunBanner(ctx)
		}
		if initial := strings.TrimSpace(cli.prompt); initial != "" {
			// 初始命令不是用户在终端里敲的，回显被抑制时手动补上
			if stdinTTY {
				fmt.Fprintln(os.Stdout, cfg.Prompt+initial)
			}
			ctrl.Run(ctx, initial)
		}
		if err := repl.Run(ctx, repl.LoopOptions{
			Controller: ctrl,
			Host:       host,
			In:         os.Stdin,
			ShowPrompt: stdinTTY,
		}); err != nil {
			log.Errorf("read input: %v", err)
		}
		entries = ctrl.History()
	}

	if features.Enabled(cfg.Features, features.SaveSession) {
		commands := sessionCommands(seed, entries, len(seedHistory))
		if id, err := saveSession(client, seed, commands); err != nil {
			log.Warnf("save session: %v", err)
		} else if id != "" {
			printExitSummary(id)
		}
	}
	client.Close()
}

// initialHistory 决定 Navigator 的初始日志：resume 时用会话自己的命令，
// 否则用持久化的历史文件。
func initialHistory(store *history.Store, seed *session.Record) []string {
	if seed != nil {
		return append([]string(nil), seed.Commands...)
	}
	if store == nil {
		return nil
	}
	texts, err := store.LoadTexts()
	if err != nil {
		log.Warnf("load history %s: %v", store.Path, err)
		return nil
	}
	return texts
}

// sessionCommands 返回要随会话保存的命令：resume 前的命令加上本次新提交的命令。
func sessionCommands(seed *session.Record, entries []string, seeded int) []string {
	var commands []string
	if seed != nil {
		commands = append(commands, seed.Commands...)
	}
	if seeded <= len(entries) {
		commands = append(commands, entries[seeded:]...)
	}
	if len(commands) > historyLimit {
		commands = commands[len(commands)-historyLimit:]
	}
	return commands
}

// saveSession 在握手完成后保存 token；还没有 token 时不保存，返回空 id。
func saveSession(client *session.Client, seed *session.Record, commands []string) (string, error) {
	st := client.State()
	if st.Token == "" {
		return "", nil
	}
	rec := session.Record{
		Endpoint: client.Endpoint(),
		Token:    st.Token,
		Commands: commands,
	}
	if seed != nil {
		rec.ID = seed.ID
	}
	return sessionStore().Save(rec)
}

func loadSessionRecord(id string, last bool) (session.Record, error) {
	store := sessionStore()
	if last {
		return store.Last()
	}
	return store.Load(id)
}

func printExitSummary(id string) {
	fmt.Fprintf(os.Stdout, "To continue this session, run interwebz-cli resume %s\n", id)
}
