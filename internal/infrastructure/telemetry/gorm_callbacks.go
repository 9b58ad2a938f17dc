package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type queryStartKey struct{ plugin string }

// registerAround installs before/after callbacks named "<plugin>:before_<op>"
// and "<plugin>:after_<op>" around every GORM processor
func registerAround(db *gorm.DB, plugin string, after func(*gorm.DB, string)) error {
	key := queryStartKey{plugin: plugin}
	before := func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		tx.Statement.Context = context.WithValue(ctx, key, time.Now())
	}

	cb := db.Callback()
	processors := []struct {
		op        string
		operation string
		before    func(string) error
		after     func(string, func(*gorm.DB)) error
	}{
		{"create", "INSERT", func(n string) error { return cb.Create().Before("gorm:create").Register(n, before) },
			func(n string, f func(*gorm.DB)) error { return cb.Create().After("gorm:create").Register(n, f) }},
		{"query", "SELECT", func(n string) error { return cb.Query().Before("gorm:query").Register(n, before) },
			func(n string, f func(*gorm.DB)) error { return cb.Query().After("gorm:query").Register(n, f) }},
		{"update", "UPDATE", func(n string) error { return cb.Update().Before("gorm:update").Register(n, before) },
			func(n string, f func(*gorm.DB)) error { return cb.Update().After("gorm:update").Register(n, f) }},
		{"delete", "DELETE", func(n string) error { return cb.Delete().Before("gorm:delete").Register(n, before) },
			func(n string, f func(*gorm.DB)) error { return cb.Delete().After("gorm:delete").Register(n, f) }},
		{"row", "", func(n string) error { return cb.Row().Before("gorm:row").Register(n, before) },
			func(n string, f func(*gorm.DB)) error { return cb.Row().After("gorm:row").Register(n, f) }},
		{"raw", "", func(n string) error { return cb.Raw().Before("gorm:raw").Register(n, before) },
			func(n string, f func(*gorm.DB)) error { return cb.Raw().After("gorm:raw").Register(n, f) }},
	}

	for _, p := range processors {
		operation := p.operation
		if err := p.before(fmt.Sprintf("%s:before_%s", plugin, p.op)); err != nil {
			return err
		}
		afterFn := func(tx *gorm.DB) {
			op := operation
			if op == "" {
				op = detectOperationType(tx.Statement.SQL.String())
			}
			after(tx, op)
		}
		if err := p.after(fmt.Sprintf("%s:after_%s", plugin, p.op), afterFn); err != nil {
			return err
		}
	}
	return nil
}

// queryDuration returns the time elapsed since the plugin's before callback
func queryDuration(tx *gorm.DB, plugin string) (time.Duration, bool) {
	if tx.Statement.Context == nil {
		return 0, false
	}
	start, ok := tx.Statement.Context.Value(queryStartKey{plugin: plugin}).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

// detectOperationType guesses the SQL verb of a raw statement
func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	for _, verb := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, verb) {
			return verb
		}
	}
	return "OTHER"
}
