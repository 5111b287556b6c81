// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"database/sql"
	"math/big"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/stakemesh/linearpool/pool"
	"github.com/stakemesh/linearpool/stake"
)

const eventTableSchema = `CREATE TABLE IF NOT EXISTS poolevent (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	eventTime INTEGER NOT NULL,
	eventType TEXT NOT NULL,
	account BLOB(20),
	token BLOB(20),
	amount TEXT
);

CREATE INDEX IF NOT EXISTS poolevent_i1 ON poolevent(account);
CREATE INDEX IF NOT EXISTS poolevent_i2 ON poolevent(eventTime);`

// EventDB is the durable journal of pool events, kept in sqlite so that
// external consumers and auditors can query history after the fact.
type EventDB struct {
	path string
	db   *sql.DB
}

// New creates or opens the event db at the given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}
	return &EventDB{
		path,
		db,
	}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close closes the event db.
func (db *EventDB) Close() {
	db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

// Log journals one pool event.
func (db *EventDB) Log(ev *pool.Event) error {
	amount := "0"
	if ev.Amount != nil {
		amount = ev.Amount.String()
	}
	_, err := db.db.Exec(
		"INSERT INTO poolevent(eventTime, eventType, account, token, amount) VALUES(?,?,?,?,?)",
		ev.Time, string(ev.Type), ev.Account.Bytes(), ev.Token.Bytes(), amount,
	)
	if err != nil {
		return errors.Wrap(err, "log event")
	}
	metricEventsLogged().AddWithLabel(1, map[string]string{"type": string(ev.Type)})
	return nil
}

// Filter queries journaled events. A nil filter returns everything in
// ascending seq order.
func (db *EventDB) Filter(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	stmt := "SELECT seq, eventTime, eventType, account, token, amount FROM poolevent WHERE 1"
	var args []interface{}

	if filter != nil {
		metricsHandleEventsFilter(filter)
		if filter.Account != nil {
			stmt += " AND account = ?"
			args = append(args, filter.Account.Bytes())
		}
		if len(filter.Types) > 0 {
			stmt += " AND eventType IN (?" + repeat(",?", len(filter.Types)-1) + ")"
			for _, t := range filter.Types {
				args = append(args, string(t))
			}
		}
		if filter.Range != nil {
			stmt += " AND eventTime >= ?"
			args = append(args, filter.Range.From)
			if filter.Range.To >= filter.Range.From {
				stmt += " AND eventTime <= ?"
				args = append(args, filter.Range.To)
			}
		}
	}

	if filter != nil && filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter != nil && filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}

	return db.queryEvents(ctx, stmt, args...)
}

func (db *EventDB) queryEvents(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			ev        Event
			eventType string
			account   []byte
			token     []byte
			amount    string
		)
		if err := rows.Scan(&ev.Seq, &ev.Time, &eventType, &account, &token, &amount); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		ev.Type = pool.EventType(eventType)
		ev.Account = stake.BytesToAddress(account)
		ev.Token = stake.BytesToAddress(token)
		ev.Amount = new(big.Int)
		if _, ok := ev.Amount.SetString(amount, 10); !ok {
			return nil, errors.Errorf("corrupted event amount %q at seq %d", amount, ev.Seq)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func repeat(s string, n int) (out string) {
	for range n {
		out += s
	}
	return
}
