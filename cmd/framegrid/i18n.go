// Package main provides localization for the framegrid CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Tools":         "外部ツール",
		"Output":        "出力先",
		"Sampling":      "フレーム抽出",
		"Animation":     "アニメーション",
		"Debug":         "デバッグ",
		"Logging":       "ログ",

		// Root command
		"Sample video frames into print sheets and animate sheets": "動画のフレームを印刷シートにまとめ、シートをアニメーションにします",

		// Commands
		"Print nine evenly spaced frames of a video on one sheet": "動画から等間隔に9フレームを抽出して1枚のシートに印刷",
		"Turn a 3x3 sheet image into a looping GIF":               "3x3 のシート画像をループする GIF に変換",
		"Serve the upload page and job API over HTTP":             "アップロードページとジョブ API を HTTP で提供",
		"Show version information":                                "バージョン情報を表示",
		"framegrid version %s":                                    "framegrid バージョン %s",
		"expected exactly one %s argument":                        "%s 引数を1つだけ指定してください",

		// Global flags
		"YAML configuration file":        "YAML 設定ファイル",
		"Path to the ffmpeg executable":  "ffmpeg 実行ファイルのパス",
		"Path to the ffprobe executable": "ffprobe 実行ファイルのパス",
		"Path to Chrome executable (falls back to CHROME_PATH env, then system default)": "Chrome実行ファイルのパス（未指定時はCHROME_PATH環境変数、次にシステムデフォルト）",
		"Download Chromium when no browser is found":                                     "ブラウザが見つからない場合に Chromium をダウンロード",
		"Enable debug output":                                                            "デバッグ出力を有効化",
		"Directory for debug output":                                                     "デバッグ出力先ディレクトリ",
		"Log level (debug, info, warn, error)":                                           "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                                        "すべてのログ出力を抑制",

		// Sample flags
		"Output PDF file path (required)":                "出力PDFファイルパス（必須）",
		"Also save the print page HTML":                  "印刷ページの HTML も保存",
		"Also save a PNG contact sheet":                  "PNG のコンタクトシートも保存",
		"Preview cell width in pixels (0 = source size)": "プレビューのセル幅（ピクセル、0 で元サイズ）",
		"Write a Markdown run summary":                   "Markdown 形式の実行サマリーを出力",
		"Pause between layout and printing":              "レイアウトから印刷までの待ち時間",
		"Time limit for each frame seek (0 = none)":      "フレームごとのシーク制限時間（0 で無制限）",

		// Split flags
		"Output GIF file path (required)":                    "出力GIFファイルパス（必須）",
		"Frame delay in milliseconds (default: 200)":         "フレーム間隔（ミリ秒、デフォルト: 200）",
		"Parallel palette workers (default: 2)":              "パレット生成の並列数（デフォルト: 2）",
		"Palette sampling interval, 1 is best (default: 10)": "パレットのサンプリング間隔、1 が最高品質（デフォルト: 10）",
		"Disable dithering":                                  "ディザリングを無効化",

		// Serve flags
		"Listen address (default: :8080)": "待ち受けアドレス（デフォルト: :8080）",
		"Concurrent jobs (default: 2)":    "同時実行ジョブ数（デフォルト: 2）",
		"CORS allowed origin, repeatable": "CORS で許可するオリジン（複数指定可）",
		"Directory for temporary uploads": "アップロードの一時保存先",

		// Summary
		"Frame Sampling Summary": "フレーム抽出サマリー",
		"Animation Summary":      "アニメーションサマリー",
		"Source":                 "入力",
		"File":                   "ファイル",
		"Path":                   "パス",
		"Video":                  "動画",
		"Dimensions":             "サイズ",
		"Duration":               "長さ",
		"Layout":                 "レイアウト",
		"Orientation":            "向き",
		"landscape":              "横向き",
		"portrait":               "縦向き",
		"Page Size":              "用紙サイズ",
		"Print Width":            "印刷幅",
		"Frames":                 "フレーム",
		"Timestamp":              "時刻",
		"Sheet Size":             "シートサイズ",
		"Frame Size":             "フレームサイズ",
		"Delay":                  "間隔",
		"Workers":                "ワーカー数",
		"Quality":                "品質",
		"File Size":              "ファイルサイズ",
		"Elapsed":                "所要時間",
		"Item":                   "項目",
		"Value":                  "値",
		"Generated at":           "生成日時",
	})
}
