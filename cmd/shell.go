package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shouni/go-web-scrape/pkg/types"
)

const shellPrompt = "\nEnter URL to scrape (or 'quit' to exit): "

// exitCommands は、対話ループを終了する入力です (大文字小文字は区別しない)。
var exitCommands = map[string]bool{"quit": true, "exit": true, "q": true}

// resultScraper は、対話ループが依存するスクレイピング機能です。
type resultScraper interface {
	Scrape(ctx context.Context, rawURL string) types.ScrapeResult
}

// runShell は、入力からURLを1行ずつ読み取り、結果を出力するループです。
// 終了コマンドまたは入力の終端でループを抜けます。スクレイピングの失敗ではループを終了しません。
func runShell(ctx context.Context, in io.Reader, out io.Writer, s resultScraper, linkLimit int) error {
	printBanner(out)

	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, shellPrompt)
		line, err := readLine(reader)
		if err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("標準入力の読み取りエラー: %w", err)
		}

		input := strings.TrimSpace(line)
		if exitCommands[strings.ToLower(input)] {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		fmt.Fprintln(out, "\nScraping...")
		printResult(out, s.Scrape(ctx, input), linkLimit)
	}
}

// readLine は、改行までの1行を長さの制限なく読み取ります。
// 改行のない最終行はそのまま返し、読み取る内容がなくなった場合のみ io.EOF を返します。
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "URLを対話的に入力し、タイトル・説明文・リンクを表示します",
	Long:  `標準入力からURLを1行ずつ読み取り、ページのタイトル・説明文・先頭のリンクを表示します。quit / exit / q で終了します。`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := GetGlobalScraper()
		if s == nil {
			return fmt.Errorf("スクレイパーが初期化されていません")
		}
		return runShell(cmd.Context(), os.Stdin, cmd.OutOrStdout(), s, s.LinkLimit())
	},
}
