package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	title := "Frame Sampling Summary"
	if s.Kind == KindSplit {
		title = "Animation Summary"
	}
	fmt.Fprintf(&b, "# %s\n\n", t(title))

	f.section(&b, t("Source"), [][2]string{
		{t("File"), s.Source.Name},
		{t("Path"), s.Source.Path},
	})

	switch s.Kind {
	case KindSample:
		f.section(&b, t("Video"), [][2]string{
			{t("Dimensions"), fmt.Sprintf("%dx%d", s.Video.Width, s.Video.Height)},
			{t("Duration"), fmt.Sprintf("%.2f s", s.Video.DurationSec)},
		})
		f.section(&b, t("Layout"), [][2]string{
			{t("Orientation"), t(s.Layout.Orientation)},
			{t("Page Size"), fmt.Sprintf("%gin x %gin", s.Layout.PageWidthIn, s.Layout.PageHeightIn)},
			{t("Print Width"), fmt.Sprintf("%.4gin", s.Layout.PrintWidthIn)},
		})
		if len(s.Timeline) > 0 {
			fmt.Fprintf(&b, "## %s\n\n", t("Frames"))
			fmt.Fprintf(&b, "| # | %s |\n|---|---|\n", t("Timestamp"))
			for i, ts := range s.Timeline {
				fmt.Fprintf(&b, "| %d | %s |\n", i+1, formatSeconds(ts))
			}
			b.WriteString("\n")
		}
	case KindSplit:
		a := s.Animation
		f.section(&b, t("Animation"), [][2]string{
			{t("Sheet Size"), fmt.Sprintf("%dx%d", a.SheetWidth, a.SheetHeight)},
			{t("Frame Size"), fmt.Sprintf("%dx%d", a.FrameWidth, a.FrameHeight)},
			{t("Frames"), fmt.Sprintf("%d", a.FrameCount)},
			{t("Delay"), fmt.Sprintf("%d ms", a.DelayMs)},
			{t("Workers"), fmt.Sprintf("%d", a.Workers)},
			{t("Quality"), fmt.Sprintf("%d", a.Quality)},
		})
	}

	output := [][2]string{{t("File Size"), formatBytes(s.Output.FileSize)}}
	if s.Output.Path != "" {
		output = append([][2]string{{t("Path"), s.Output.Path}}, output...)
	}
	if s.Elapsed > 0 {
		output = append(output, [2]string{t("Elapsed"), s.Elapsed.Round(time.Millisecond).String()})
	}
	f.section(&b, t("Output"), output)

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += fmt.Sprintf(" (framegrid %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func (f *MarkdownFormatter) section(b *strings.Builder, heading string, rows [][2]string) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", f.translate("Item"), f.translate("Value"))
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", row[0], row[1])
	}
	b.WriteString("\n")
}

// formatSeconds renders seconds as m:ss.sss.
func formatSeconds(sec float64) string {
	m := int(sec) / 60
	return fmt.Sprintf("%d:%06.3f", m, sec-float64(m*60))
}

// formatBytes formats byte counts with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
