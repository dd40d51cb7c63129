package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"interwebz-cli/internal/session"
)

func resumeMain(root rootArgs, args []string) {
	fs, cli := newInteractiveFlagSet("resume")
	var resumeLast bool
	var list bool
	fs.BoolVar(&resumeLast, "last", false, "Resume most recent session")
	fs.BoolVar(&list, "list", false, "List saved sessions and exit")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse resume args: %v", err)
	}

	if list {
		if err := listSessions(sessionStore(), os.Stdout); err != nil {
			log.Fatalf("list sessions: %v", err)
		}
		return
	}

	extra := fs.Args()
	sessionID := cli.resumeSessionID
	if sessionID == "" && len(extra) > 0 {
		sessionID = extra[0]
		extra = extra[1:]
	}
	if cli.prompt == "" && len(extra) > 0 {
		cli.prompt = strings.Join(extra, " ")
	}
	if sessionID == "" && !resumeLast {
		resumeLast = true
	}

	cli.resumeLast = resumeLast
	cli.resumeSessionID = sessionID
	cli.configOverrides = stringSlice(prependOverrides(root.overrides, []string(cli.configOverrides)))

	rec, err := loadSessionRecord(sessionID, resumeLast)
	if err != nil {
		log.Fatalf("failed to load session: %v", err)
	}
	startInteractiveSession(cli, &rec)
}

func listSessions(store session.Store, out io.Writer) error {
	records, err := store.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "no saved sessions")
		return err
	}
	for _, rec := range records {
		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\t%d commands\n",
			rec.ID, rec.Updated.Format("2006-01-02 15:04:05"), rec.Endpoint, len(rec.Commands)); err != nil {
			return err
		}
	}
	return nil
}
