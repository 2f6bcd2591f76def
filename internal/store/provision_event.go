package store

import (
	"context"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendProvisionEvent(ctx context.Context, data ProvisionEventData) error {
	titles := data.Titles
	if titles == nil {
		titles = []string{}
	}
	encoded, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("encode titles: %w", err)
	}

	return r.insert(ctx, tableProvisions,
		[]string{"level", "difficulty", "requested", "provenance", "challenge_count", "titles", "error_message"},
		[]any{data.Level, data.Difficulty, data.Requested, data.Provenance, len(titles), string(encoded), data.ErrorMessage},
	)
}

func (r *eventRepo) QueryProvisionEvents(ctx context.Context, opts QueryOpts) ([]ProvisionEvent, error) {
	sel := r.sql.Select("id", "sequence", "ts", "level", "difficulty", "requested", "provenance", "titles", "error_message").
		From(entsql.Table(tableProvisions)).
		OrderBy(entsql.Desc("sequence"))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query provision events: %w", err)
	}
	defer rows.Close()

	var out []ProvisionEvent
	for rows.Next() {
		var e ProvisionEvent
		var ts int64
		var titles string
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.Level, &e.Difficulty, &e.Requested,
			&e.Provenance, &titles, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan provision event: %w", err)
		}
		if err := json.Unmarshal([]byte(titles), &e.Titles); err != nil {
			return nil, fmt.Errorf("decode titles of event %d: %w", e.ID, err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecentChallengeTitles only looks at model-generated batches; fallback
// titles are fixed and repeating them is expected.
func (r *eventRepo) RecentChallengeTitles(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	query, args := r.sql.Select("titles").
		From(entsql.Table(tableProvisions)).
		Where(entsql.EQ("provenance", "model")).
		OrderBy(entsql.Desc("sequence")).
		Limit(limit).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent titles: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var out []string
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("scan recent titles: %w", err)
		}
		var titles []string
		if err := json.Unmarshal([]byte(encoded), &titles); err != nil {
			continue
		}
		for _, t := range titles {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
			if len(out) == limit {
				return out, nil
			}
		}
	}
	return out, rows.Err()
}
