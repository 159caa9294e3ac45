package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"letterbot/internal/common/logger"
	"letterbot/internal/common/metrics"
)

// Runner abstracts the query engine for the dispatcher.
type Runner interface {
	Execute(ctx context.Context, queryText string) (*ResultSet, error)
}

// Dispatcher maps slash commands onto audit-log queries.
type Dispatcher struct {
	engine Runner
	table  string
	log    logger.Logger
}

func NewDispatcher(engine Runner, table string, log logger.Logger) *Dispatcher {
	return &Dispatcher{engine: engine, table: table, log: log}
}

// Dispatch tokenizes the command text and returns the reply to post back.
// Unknown subcommands return the usage text without touching the engine.
func (d *Dispatcher) Dispatch(ctx context.Context, command, text string) (string, error) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return Usage(command), nil
	}

	var q string
	sub := strings.ToLower(parts[0])
	switch sub {
	case "stats":
		where := ""
		if len(parts) > 1 {
			where = "WHERE projectid=" + EscapeLiteral(parts[1]) + " "
		}
		q = fmt.Sprintf("SELECT projectid, COUNT(*) AS cnt FROM %s %sGROUP BY projectid ORDER BY cnt DESC", d.table, where)
	case "leaderboard":
		q = fmt.Sprintf("SELECT sender, COUNT(*) AS cnt FROM %s GROUP BY sender ORDER BY cnt DESC LIMIT 10", d.table)
	case "author":
		if len(parts) < 2 {
			return "Must specify author name", nil
		}
		needle := "%" + strings.ToLower(strings.Join(parts[1:], " ")) + "%"
		q = fmt.Sprintf("SELECT sender, approvedTimestampUTC AS approved_at, subject FROM %s WHERE lower(sender) LIKE %s", d.table, EscapeLiteral(needle))
	case "query":
		q = strings.Join(parts[1:], " ")
	default:
		return Usage(command), nil
	}

	start := time.Now()
	rs, err := d.engine.Execute(ctx, q)
	metrics.QueryDuration.WithLabelValues(sub).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}

	return "```" + FormatResultSet(rs) + "```", nil
}

// Usage returns the static help text for an unrecognized subcommand.
func Usage(command string) string {
	return strings.Join([]string{
		fmt.Sprintf("Usage: `%s command`", command),
		"",
		"Commands:",
		"• `stats [<project>]`: print out the number of letters sent in each campaign (or specific given campaign)",
		"• `leaderboard`: print out the 10 most prolific letter authors",
		"• `author <name or part of name>`: list the subjects of the letters the given author has written",
		"• `query <SQL query>`: run the given SQL query and print out the results",
	}, "\n")
}
