package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/spf13/viper"

	"arber/logger"
	"arber/types"
)

const databaseName = "arber"

type ClickhouseDB struct {
	conn driver.Conn
}

// Enabled reports whether a ClickHouse sink is configured at all.
func Enabled() bool {
	return viper.GetString("CLICKHOUSE_ADDR") != ""
}

func NewClickhouse() Database {
	opts := &clickhouse.Options{
		Addr: []string{viper.GetString("CLICKHOUSE_ADDR")},
		Auth: clickhouse.Auth{
			Database: viper.GetString("CLICKHOUSE_DATABASE"),
			Username: viper.GetString("CLICKHOUSE_USERNAME"),
			Password: viper.GetString("CLICKHOUSE_PASSWORD"),
		},
		DialTimeout:  5 * time.Second,
		Compression:  &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
		MaxOpenConns: 10,
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		slog.Error("Failed to connect to ClickHouse", "error", err)
	}

	return &ClickhouseDB{conn: conn}
}

func (d *ClickhouseDB) Close() error {
	return d.conn.Close()
}

func (d *ClickhouseDB) EnsureDatabaseExists() error {
	query := fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s`, databaseName)
	if err := d.conn.Exec(context.Background(), query); err != nil {
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}
	logger.GlobalLogger.Info("Database ensured to exist", "database", databaseName)
	return nil
}

func (d *ClickhouseDB) CreateTables() error {
	queries := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.arb_attempts
		(
			executionId String,
			mint String,
			amountIn UInt64,
			profit Int64,
			tipLamports UInt64,
			status String,
			bundleId String,
			transactions Array(String),
			timestamp DateTime
		)
		ENGINE = MergeTree
		ORDER BY (timestamp, executionId)
		SETTINGS index_granularity = 8192`, databaseName),
	}

	for _, q := range queries {
		if err := d.conn.Exec(context.Background(), q); err != nil {
			return err
		}
		logger.GlobalLogger.Info("Check or create table in DB", "query", q)
	}
	return nil
}

func (d *ClickhouseDB) DropTables() error {
	rows, err := d.conn.Query(context.Background(),
		fmt.Sprintf("SHOW TABLES FROM %s", databaseName))
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	for _, t := range tables {
		q := fmt.Sprintf("DROP TABLE IF EXISTS %s.%s", databaseName, t)
		if err := d.conn.Exec(context.Background(), q); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", t, err)
		}
	}

	return nil
}

func (d *ClickhouseDB) InsertArbAttempts(attempts types.ArbAttempts) error {
	if len(attempts) == 0 {
		return nil
	}
	batch, err := d.conn.PrepareBatch(context.Background(),
		fmt.Sprintf("INSERT INTO %s.arb_attempts", databaseName))
	if err != nil {
		return err
	}
	for _, attempt := range attempts {
		if err := batch.AppendStruct(attempt); err != nil {
			return err
		}
	}
	return batch.Send()
}

func (d *ClickhouseDB) QueryRecentAttempts(limit uint) (types.ArbAttempts, error) {
	rows, err := d.conn.Query(context.Background(),
		fmt.Sprintf(`SELECT executionId, mint, amountIn, profit, tipLamports, status, bundleId, transactions, timestamp
		FROM %s.arb_attempts ORDER BY timestamp DESC LIMIT %d`, databaseName, limit))
	if err != nil {
		return nil, fmt.Errorf("query recent attempts failed: %w", err)
	}
	defer rows.Close()

	attempts := make(types.ArbAttempts, 0, limit)
	for rows.Next() {
		var a types.ArbAttempt
		if err := rows.Scan(&a.ExecutionId, &a.Mint, &a.AmountIn, &a.Profit, &a.TipLamports, &a.Status, &a.BundleId, &a.Transactions, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan attempt failed: %w", err)
		}
		attempts = append(attempts, &a)
	}

	return attempts, rows.Err()
}

func (d *ClickhouseDB) QueryAttemptByExecutionId(executionId string) (*types.ArbAttempt, error) {
	row := d.conn.QueryRow(context.Background(),
		fmt.Sprintf(`SELECT executionId, mint, amountIn, profit, tipLamports, status, bundleId, transactions, timestamp
		FROM %s.arb_attempts WHERE executionId = ? LIMIT 1`, databaseName), executionId)

	var a types.ArbAttempt
	if err := row.Scan(&a.ExecutionId, &a.Mint, &a.AmountIn, &a.Profit, &a.TipLamports, &a.Status, &a.BundleId, &a.Transactions, &a.Timestamp); err != nil {
		return nil, fmt.Errorf("query attempt %s failed: %w", executionId, err)
	}
	return &a, nil
}
