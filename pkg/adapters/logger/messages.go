package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Sampling frames from %s":         "%s からフレームを抽出します",
		"Splitting sheet %s":              "シート %s を分割します",
		"Output saved to %s":              "出力を %s に保存しました",
		"Print page saved to %s":          "印刷ページを %s に保存しました",
		"Preview saved to %s":             "プレビューを %s に保存しました",
		"Sampler completed successfully":  "フレーム抽出が正常に完了しました",
		"Splitter completed successfully": "アニメーション作成が正常に完了しました",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",
		"Summary saved to %s":             "サマリーを %s に保存しました",

		// Progress indicator
		"Extracting frames":   "フレームを抽出中",
		"Creating animation":  "アニメーションを作成中",
		"Loading video":       "動画を読み込み中",
		"Preparing frames":    "フレームを準備中",
		"Rendering animation": "アニメーションをレンダリング中",
		"Frame %d of %d":      "フレーム %d / %d",

		// Sampler
		"Video metadata: %dx%d, %.2fs":           "動画メタデータ: %dx%d, %.2f秒",
		"Layout: %s, print width %s":             "レイアウト: %s, 印刷幅 %s",
		"Frame interval: %.3fs":                  "フレーム間隔: %.3f秒",
		"Captured %d frames":                     "%d フレームをキャプチャしました",
		"Extracting frame %d at %.3fs":           "フレーム %d を %.3f秒 で抽出中",
		"Seeked to %.3fs":                        "%.3f秒 にシークしました",
		"Printing %s sheet at width %s":          "%s シートを幅 %s で印刷中",
		"Composing %dx%d preview from %d frames": "%dx%d のプレビューを %d フレームから合成中",

		// Splitter
		"Sheet loaded: %dx%d":                                    "シートを読み込みました: %dx%d",
		"Frame dimensions: %dx%d":                                "フレームサイズ: %dx%d",
		"Split sheet into %d tiles of %dx%d":                     "シートを %d 枚の %dx%d タイルに分割しました",
		"Encoding %d frames, delay %dms, %d workers, quality %d": "%d フレームをエンコード中 (遅延 %dms, ワーカー %d, 品質 %d)",
		"Animation encoded: %d bytes":                            "アニメーションエンコード完了: %d バイト",

		// Server
		"Listening on %s":    "%s で待ち受けています",
		"Job %s started: %s": "ジョブ %s を開始しました: %s",
		"Job %s finished":    "ジョブ %s が完了しました",
		"Job %s failed: %s":  "ジョブ %s が失敗しました: %s",

		// Warnings
		"Sheet size %dx%d is not divisible by %d, trimming edge pixels": "シートサイズ %dx%d は %d で割り切れません。端のピクセルを切り捨てます",
		"Frame at %.3fs is empty, retrying at %.3fs":                    "%.3f秒 のフレームが空です。%.3f秒 で再試行します",
		"Fast probe skipped: %s":                                        "高速メタデータ読み込みをスキップ: %s",
		"Chrome not found, installing Chromium":                         "Chrome が見つかりません。Chromium をインストールします",
		"ffmpeg not found, video sampling is unavailable":               "ffmpeg が見つかりません。フレーム抽出は利用できません",

		// Errors
		"Failed to open video: %s":           "動画を開けませんでした: %s",
		"Failed to load video metadata: %s":  "動画メタデータの読み込みに失敗しました: %s",
		"Failed to calculate layout: %s":     "レイアウトの計算に失敗しました: %s",
		"Failed to load video data: %s":      "動画データの読み込みに失敗しました: %s",
		"Failed to compute timeline: %s":     "タイムラインの計算に失敗しました: %s",
		"Failed to capture frames: %s":       "フレームのキャプチャに失敗しました: %s",
		"Failed to print sheet: %s":          "シートの印刷に失敗しました: %s",
		"Animation encoder is not available": "アニメーションエンコーダーが利用できません",
		"Failed to read sheet: %s":           "シートの読み込みに失敗しました: %s",
		"Failed to decode sheet: %s":         "シートのデコードに失敗しました: %s",
		"Failed to split sheet: %s":          "シートの分割に失敗しました: %s",
		"Failed to encode animation: %s":     "アニメーションのエンコードに失敗しました: %s",
		"Failed to write output: %s":         "出力の書き込みに失敗しました: %s",
	})
}
