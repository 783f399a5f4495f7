package chromeprinter

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// ErrChromeNotFound is returned when no Chrome executable can be located.
var ErrChromeNotFound = errors.New("chrome not found: please install Chrome/Chromium, set CHROME_PATH environment variable, or use --chrome-path option")

// InstallChromium downloads Playwright's Chromium build and returns its
// executable path.
func InstallChromium() (string, error) {
	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	}); err != nil {
		return "", fmt.Errorf("install chromium: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return "", fmt.Errorf("start playwright: %w", err)
	}
	defer pw.Stop()

	path := pw.Chromium.ExecutablePath()
	if path == "" {
		return "", ErrChromeNotFound
	}
	return path, nil
}
