package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendPracticeEvent(ctx context.Context, data PracticeEventData) error {
	return r.insert(ctx, tablePractice,
		[]string{
			"session_id", "action", "level", "provenance", "challenge_index", "challenge_id",
			"challenge_title", "language", "passed", "solved_count", "total", "elapsed_ms",
		},
		[]any{
			data.SessionID, data.Action, data.Level, data.Provenance, data.ChallengeIndex, data.ChallengeID,
			data.ChallengeTitle, data.Language, data.Passed, data.SolvedCount, data.Total, data.Elapsed.Milliseconds(),
		},
	)
}

func (r *eventRepo) PracticeHistory(ctx context.Context, limit int) ([]PracticeSessionSummary, error) {
	sel := r.sql.Select("session_id", "ts", "level", "provenance", "solved_count", "total", "elapsed_ms").
		From(entsql.Table(tablePractice)).
		Where(entsql.EQ("action", PracticeActionEnd)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query practice history: %w", err)
	}

	var out []PracticeSessionSummary
	for rows.Next() {
		var s PracticeSessionSummary
		var ts, elapsed int64
		if err := rows.Scan(&s.SessionID, &ts, &s.Level, &s.Provenance, &s.SolvedCount, &s.Total, &elapsed); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan practice history: %w", err)
		}
		s.EndedAt = fromMillis(ts)
		s.Elapsed = time.Duration(elapsed) * time.Millisecond
		out = append(out, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts, err := r.submissionCounts(ctx, out)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Submissions = counts[out[i].SessionID]
	}
	return out, nil
}

// submissionCounts counts submit events per session in one grouped query.
func (r *eventRepo) submissionCounts(ctx context.Context, sessions []PracticeSessionSummary) (map[string]int, error) {
	counts := make(map[string]int, len(sessions))
	if len(sessions) == 0 {
		return counts, nil
	}
	ids := make([]any, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}

	query, args := r.sql.Select("session_id", entsql.Count("*")).
		From(entsql.Table(tablePractice)).
		Where(entsql.And(
			entsql.EQ("action", PracticeActionSubmit),
			entsql.In("session_id", ids...),
		)).
		GroupBy("session_id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan submission count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
