package main

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//go:embed schema.sql
var schemaDDL string

// errNoRow is returned by Update and Delete when the key matched nothing.
var errNoRow = errors.New("запись не найдена")

// Result is a fetched table: column names in driver order and every cell in
// the engine's own text form. NULL cells are empty strings.
type Result struct {
	Columns []string
	Rows    [][]string
}

// dialect covers the few places where the supported drivers disagree.
type dialect struct {
	driver      string
	quote       func(ident string) string
	placeholder func(n int) string // n is 1-based
	textType    string             // CAST target for the text form of a value
}

func quoteDouble(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func quoteBacktick(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func questionMark(int) string { return "?" }

func dollar(n int) string { return "$" + strconv.Itoa(n) }

var dialects = map[string]dialect{
	"sqlite3":  {driver: "sqlite3", quote: quoteDouble, placeholder: questionMark, textType: "TEXT"},
	"mysql":    {driver: "mysql", quote: quoteBacktick, placeholder: questionMark, textType: "CHAR"},
	"postgres": {driver: "postgres", quote: quoteDouble, placeholder: dollar, textType: "TEXT"},
}

func dialectFor(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, errors.Errorf("unsupported driver %q", driver)
	}
	return d, nil
}

// text is the column as the engine prints it. Cells are shown, edited and
// matched in this form so nothing is lost to client-side formatting.
func (d dialect) text(column string) string {
	return "CAST(" + d.quote(column) + " AS " + d.textType + ")"
}

func (d dialect) selectText(table string, columns []string) string {
	exprs := make([]string, len(columns))
	for i, c := range columns {
		exprs[i] = d.text(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), d.quote(table))
}

func (d dialect) selectNone(table string) string {
	return "SELECT * FROM " + d.quote(table) + " WHERE 1 = 0"
}

func (d dialect) insert(table string, columns []string) string {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.quote(c)
		marks[i] = d.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.quote(table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

// update builds the statement for the given SET columns; the key placeholder
// comes last.
func (d dialect) update(table string, setColumns []string, keyColumn string) string {
	sets := make([]string, len(setColumns))
	for i, c := range setColumns {
		sets[i] = d.quote(c) + " = " + d.placeholder(i+1)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		d.quote(table), strings.Join(sets, ", "), d.text(keyColumn), d.placeholder(len(setColumns)+1))
}

func (d dialect) delete(table, keyColumn string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		d.quote(table), d.text(keyColumn), d.placeholder(1))
}

// Store is the data-access layer: one connection, schema agnostic.
type Store struct {
	db      *sql.DB
	dialect dialect
	log     *logrus.Logger
}

// openStore opens and pings the database. The pool is capped at one
// connection, which the whole process shares.
func openStore(driver, dsn string, logger *logrus.Logger) (*Store, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", driver)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connect to %s database", driver)
	}
	logger.WithFields(logrus.Fields{"driver": driver, "dsn": dsn}).Info("database opened")
	return &Store{db: db, dialect: d, log: logger}, nil
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates the vulcanization tables if they are missing.
func (s *Store) initSchema() error {
	for _, stmt := range splitStatements(schemaDDL) {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "create tables")
		}
	}
	return nil
}

// splitStatements drops "--" comment lines and splits on ";" so that drivers
// without multi-statement support can run the script one statement at a time.
func splitStatements(script string) []string {
	var b strings.Builder
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	var out []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Fetch returns every row of table, unordered and unfiltered.
func (s *Store) Fetch(table string) (*Result, error) {
	s.log.WithField("table", table).Debug("fetch")
	cols, err := s.Columns(table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(s.dialect.selectText(table, cols))
	if err != nil {
		return nil, errors.Wrapf(err, "select from %s", table)
	}
	defer rows.Close()

	res := &Result{Columns: cols}
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrapf(err, "scan %s", table)
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			rec[i] = v.String
		}
		res.Rows = append(res.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", table)
	}
	return res, nil
}

// Columns returns the column names of table without reading any rows.
func (s *Store) Columns(table string) ([]string, error) {
	rows, err := s.db.Query(s.dialect.selectNone(table))
	if err != nil {
		return nil, errors.Wrapf(err, "select from %s", table)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrapf(err, "columns of %s", table)
	}
	if len(cols) == 0 {
		return nil, errors.Errorf("table %s has no columns", table)
	}
	return cols, nil
}

// Insert adds one row. values line up with columns and are bound as text,
// empty fields included; the engine coerces them to the column types.
func (s *Store) Insert(table string, columns, values []string) error {
	if len(columns) != len(values) {
		return errors.Errorf("insert into %s: %d columns but %d values", table, len(columns), len(values))
	}
	s.log.WithFields(logrus.Fields{"table": table, "values": values}).Debug("insert")
	if _, err := s.db.Exec(s.dialect.insert(table, columns), textArgs(values)...); err != nil {
		return errors.Wrapf(err, "insert into %s", table)
	}
	return nil
}

// Update writes the given non-key columns of the row whose key column reads
// keyValue. The key column itself is never written.
func (s *Store) Update(table string, columns, values []string, keyColumn, keyValue string) error {
	if len(columns) != len(values) {
		return errors.Errorf("update %s: %d columns but %d values", table, len(columns), len(values))
	}

	var setCols, setVals []string
	for i, c := range columns {
		if c == keyColumn {
			continue
		}
		setCols = append(setCols, c)
		setVals = append(setVals, values[i])
	}
	if len(setCols) == 0 {
		return errors.Errorf("update %s: no columns besides %s", table, keyColumn)
	}

	fields := logrus.Fields{
		"table":      table,
		"columns":    setCols,
		"values":     setVals,
		"key_column": keyColumn,
		"key_value":  keyValue,
	}
	s.log.WithFields(fields).Debug("update")

	args := append(textArgs(setVals), keyValue)
	n, err := affected(s.db.Exec(s.dialect.update(table, setCols, keyColumn), args...))
	if err != nil {
		s.log.WithFields(fields).WithError(err).Error("update failed")
		return errors.Wrapf(err, "update %s where %s = %s", table, keyColumn, keyValue)
	}

	s.log.WithFields(fields).WithField("rows", n).Info("Данные успешно обновлены")
	return nil
}

// Delete removes the rows whose key column reads keyValue.
func (s *Store) Delete(table, keyColumn, keyValue string) error {
	s.log.WithFields(logrus.Fields{"table": table, "key_column": keyColumn, "key_value": keyValue}).Debug("delete")
	if _, err := affected(s.db.Exec(s.dialect.delete(table, keyColumn), keyValue)); err != nil {
		return errors.Wrapf(err, "delete from %s where %s = %s", table, keyColumn, keyValue)
	}
	return nil
}

// affected turns a statement that touched no rows into errNoRow.
func affected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errNoRow
	}
	return n, nil
}

func textArgs(values []string) []interface{} {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
