package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	defaultPort    = 5432
	defaultSSLMode = "require"
)

type connConfig struct {
	dsn            string
	host           string
	port           int
	user           string
	password       string
	dbname         string
	sslmode        string
	retries        int
	nonInteractive bool
}

var conn connConfig

func bindConnFlags(c *cobra.Command) {
	f := c.PersistentFlags()
	f.StringVar(&conn.dsn, "dsn", "", "Full PostgreSQL connection URL, overrides the individual settings (or SEED_DSN env)")
	f.StringVar(&conn.host, "host", "", "PostgreSQL host (or SEED_HOST env)")
	f.IntVar(&conn.port, "port", 0, "PostgreSQL port (default 5432, or SEED_PORT env)")
	f.StringVar(&conn.user, "user", "", "PostgreSQL username (or SEED_USER env)")
	f.StringVar(&conn.dbname, "dbname", "", "Clinic database name (or SEED_DBNAME env)")
	f.StringVar(&conn.sslmode, "sslmode", defaultSSLMode, "sslmode connection parameter")
	f.IntVar(&conn.retries, "retries", 3, "Max connection attempts on transient errors")
	f.BoolVar(&conn.nonInteractive, "non-interactive", false, "Never prompt; fail if any required value is missing")
}

// --- Config resolution ---

func resolveEnvConfig() {
	if conn.dsn == "" {
		conn.dsn = os.Getenv("SEED_DSN")
	}
	if conn.host == "" {
		conn.host = os.Getenv("SEED_HOST")
	}
	if conn.port == 0 {
		if p := os.Getenv("SEED_PORT"); p != "" {
			if port, err := strconv.Atoi(p); err == nil {
				conn.port = port
			}
		}
	}
	if conn.user == "" {
		conn.user = os.Getenv("SEED_USER")
	}
	if conn.dbname == "" {
		conn.dbname = os.Getenv("SEED_DBNAME")
	}
	if conn.password == "" {
		conn.password = os.Getenv("SEED_PGPASSWORD")
		if conn.password == "" {
			conn.password = os.Getenv("PGPASSWORD")
		}
	}
}

func promptForConfig(in io.Reader) error {
	reader := bufio.NewReader(in)
	readLine := func(label string) (string, error) {
		fmt.Print(label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
		}
		return strings.TrimSpace(line), nil
	}

	var err error
	if conn.host == "" {
		if conn.host, err = readLine("Host: "); err != nil {
			return err
		}
	}
	if conn.port == 0 {
		line, err := readLine(fmt.Sprintf("Port [%d]: ", defaultPort))
		if err != nil {
			return err
		}
		if port, err := strconv.Atoi(line); err == nil {
			conn.port = port
		}
	}
	if conn.user == "" {
		if conn.user, err = readLine("Username: "); err != nil {
			return err
		}
	}
	if conn.dbname == "" {
		if conn.dbname, err = readLine("Database: "); err != nil {
			return err
		}
	}
	if conn.password == "" {
		conn.password = promptPassword("Password: ")
	}
	return nil
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}
	return string(pass)
}

// resolveConnStr applies env fallbacks and prompts, then builds the URL.
func resolveConnStr() (string, error) {
	resolveEnvConfig()
	if conn.dsn != "" {
		return conn.dsn, nil
	}

	if !conn.nonInteractive {
		if err := promptForConfig(os.Stdin); err != nil {
			return "", err
		}
	}
	if conn.port == 0 {
		conn.port = defaultPort
	}
	if conn.host == "" || conn.user == "" || conn.dbname == "" {
		return "", fmt.Errorf("missing required config: set flags/env or run interactively (see --help)")
	}
	return buildConnStr(conn.host, conn.port, conn.user, conn.password, conn.dbname, conn.sslmode), nil
}

func buildConnStr(host string, port int, user, password, db, sslmode string) string {
	hostPort := host
	if port > 0 {
		hostPort = fmt.Sprintf("%s:%d", host, port)
	}
	if sslmode == "" {
		sslmode = defaultSSLMode
	}
	u := &url.URL{
		Scheme:   "postgres",
		Host:     hostPort,
		Path:     "/" + db,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

// redactConnStr hides the password of a connection URL for logging.
func redactConnStr(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "<unparseable connection string>"
	}
	return u.Redacted()
}

// openConn connects with retry. The caller closes the connection.
func openConn(ctx context.Context) (*pgx.Conn, error) {
	connStr, err := resolveConnStr()
	if err != nil {
		return nil, err
	}
	return dial(ctx, connStr)
}

func dial(ctx context.Context, connStr string) (*pgx.Conn, error) {
	log("[%s] Connecting to %s", now(), redactConnStr(connStr))
	c, err := connectWithRetry(ctx, connStr, conn.retries)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return c, nil
}

// ensureDatabase creates the database named in connStr through the
// postgres maintenance database when it does not exist yet.
func ensureDatabase(ctx context.Context, connStr string) error {
	cfg, err := pgx.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}
	target := cfg.Database
	if target == "" || target == "postgres" {
		return nil
	}
	cfg.Database = "postgres"

	var admin *pgx.Conn
	err = withRetry(ctx, max(1, conn.retries), "connect postgres", func() error {
		var err error
		admin, err = pgx.ConnectConfig(ctx, cfg)
		return err
	})
	if err != nil {
		return fmt.Errorf("connect to postgres database: %w", err)
	}
	defer admin.Close(ctx)

	var exists bool
	if err := admin.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", target).Scan(&exists); err != nil {
		return fmt.Errorf("look up database %s: %w", target, err)
	}
	if exists {
		return nil
	}
	if _, err := admin.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{target}.Sanitize()); err != nil {
		return fmt.Errorf("create database %s: %w", target, err)
	}
	log("[%s] Created database %s", now(), target)
	return nil
}

// --- Retry and reconnect ---

var retryBase = time.Second

func withRetry(ctx context.Context, maxAttempts int, label string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isTransientError(lastErr) {
			return lastErr
		}
		if attempt < maxAttempts {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * retryBase
			log("[%s] Transient error on %s (attempt %d/%d), retrying in %v: %v",
				now(), label, attempt, maxAttempts, backoff, lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"connection timed out",
		"broken pipe",
		"unexpected eof",
		"i/o timeout",
		"server closed the connection unexpectedly",
		"could not connect to server",
		"the database system is starting up",
		"too many connections",
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func connectWithRetry(ctx context.Context, connStr string, attempts int) (*pgx.Conn, error) {
	var c *pgx.Conn
	err := withRetry(ctx, max(1, attempts), "connect", func() error {
		var err error
		c, err = pgx.Connect(ctx, connStr)
		return err
	})
	return c, err
}
