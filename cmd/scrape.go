package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rawURL string

// resolveTargetURL は、処理対象URLを 位置引数 → --url フラグ → 標準入力 の順に決定します。
func resolveTargetURL(args []string, flagURL string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	if flagURL != "" {
		return strings.TrimSpace(flagURL), nil
	}

	fmt.Fprint(out, "処理するURLを入力してください: ")
	line, err := readLine(bufio.NewReader(in))
	if err == io.EOF {
		return "", fmt.Errorf("URLが入力されていません")
	}
	if err != nil {
		return "", fmt.Errorf("標準入力の読み取りエラー: %w", err)
	}
	return strings.TrimSpace(line), nil
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [URL]",
	Short: "指定されたURLのタイトル・説明文・リンクを1回だけ取得します",
	Long:  `位置引数、--url フラグ、または標準入力で指定されたURLを1回だけスクレイピングし、結果を表示します。`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := GetGlobalScraper()
		if s == nil {
			return fmt.Errorf("スクレイパーが初期化されていません")
		}

		// 1. 処理対象URLの決定
		target, err := resolveTargetURL(args, rawURL, os.Stdin, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		// 2. スクレイピングの実行と結果の出力
		result := s.Scrape(cmd.Context(), target)
		printResult(cmd.OutOrStdout(), result, s.LinkLimit())

		if result.Failed() {
			return fmt.Errorf("スクレイピングに失敗しました (URL: %s): %w", target, result.Error)
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVarP(&rawURL, "url", "u", "", "スクレイピング対象のURL")
}
