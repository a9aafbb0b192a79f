package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-web-scrape/internal/pipeline"
	"github.com/shouni/go-web-scrape/pkg/extract"
	"github.com/shouni/go-web-scrape/pkg/fetcher"
	"github.com/shouni/go-web-scrape/pkg/scraper"
)

// --- グローバル定数 ---

const (
	appName           = "web-scrape"
	defaultTimeoutSec = 10 // 秒
)

// --- グローバル変数とフラグ構造体 ---

// AppFlags はこのアプリケーション固有の永続フラグを保持
type AppFlags struct {
	TimeoutSec int    // --timeout タイムアウト
	UserAgent  string // --user-agent 送信するUser-Agent
	LinkLimit  int    // --limit 表示するリンク数
	Feeds      bool   // --feed フィードをフィードとして抽出するか
}

var Flags AppFlags
var globalScraper *scraper.Scraper

// --- 初期化とロジック (clibaseへのコールバックとして利用) ---

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().IntVar(
		&Flags.TimeoutSec,
		"timeout",
		defaultTimeoutSec,
		"HTTPリクエストのタイムアウト時間（秒）",
	)
	rootCmd.PersistentFlags().StringVar(
		&Flags.UserAgent,
		"user-agent",
		fetcher.DefaultUserAgent,
		"HTTPリクエストに付与するUser-Agent",
	)
	rootCmd.PersistentFlags().IntVar(
		&Flags.LinkLimit,
		"limit",
		extract.DefaultLinkLimit,
		"抽出するリンクの最大件数",
	)
	rootCmd.PersistentFlags().BoolVar(
		&Flags.Feeds,
		"feed",
		false,
		"RSS / Atom / JSON Feed のレスポンスをフィードとして抽出する",
	)
}

// initAppPreRunE は、clibase共通処理の後に実行される、アプリケーション固有のPersistentPreRunEです。
// NOTE: clibaseの PersistentPreRunE チェーンにより、clibase.Flags.Verbose はこの関数実行前に設定済み
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	logger := newLogger(clibase.Flags.Verbose)

	cfg := appConfig()
	logger.Debug().
		Dur("timeout", cfg.Timeout).
		Str("user_agent", cfg.UserAgent).
		Int("limit", cfg.LinkLimit).
		Bool("feed", cfg.Feeds).
		Msg("スクレイパーを初期化します")

	s, err := pipeline.NewScraper(cfg, logger)
	if err != nil {
		return fmt.Errorf("スクレイパーの初期化エラー: %w", err)
	}
	globalScraper = s

	return nil
}

// appConfig は、フラグの値からパイプライン設定を組み立てます。
func appConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	if Flags.TimeoutSec > 0 {
		cfg.Timeout = time.Duration(Flags.TimeoutSec) * time.Second
	}
	if Flags.UserAgent != "" {
		cfg.UserAgent = Flags.UserAgent
	}
	if Flags.LinkLimit > 0 {
		cfg.LinkLimit = Flags.LinkLimit
	}
	cfg.Feeds = Flags.Feeds
	return cfg
}

// newLogger は、標準エラー出力へのコンソールロガーを生成します。
// 通常は警告以上、--verbose 指定時はデバッグログも出力します。
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// GetGlobalScraper は、初期化されたスクレイパーを返す関数 (DIの代わり)
func GetGlobalScraper() *scraper.Scraper {
	return globalScraper
}

// --- エントリポイント ---

// Execute は、アプリケーションのメイン関数です。clibaseのExecuteを使用する。
func Execute() {
	// clibase.Execute の中でエラー時の os.Exit(1) が処理される
	clibase.Execute(
		appName,
		addAppPersistentFlags,
		initAppPreRunE,
		shellCmd,
		scrapeCmd,
	)
}
