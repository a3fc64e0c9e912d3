// Package navigator implements driven.Navigator by opening explorer
// pages in the system browser.
package navigator

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
	"github.com/custodia-labs/chainsearch/internal/logger"
)

// Ensure Browser implements the interface.
var _ driven.Navigator = (*Browser)(nil)

// Browser resolves result URLs against the explorer and opens them.
type Browser struct {
	base *url.URL
	open func(ctx context.Context, target string) error
}

// NewBrowser creates a navigator resolving relative URLs against baseURL.
func NewBrowser(baseURL string) (*Browser, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("explorer base url %q: %w", baseURL, domain.ErrInvalidInput)
	}
	return &Browser{base: base, open: openURL}, nil
}

// Resolve returns the absolute URL for a result URL.
// Root-relative paths keep the base URL's path prefix.
func (b *Browser) Resolve(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("empty url: %w", domain.ErrInvalidInput)
	}
	ref, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("url %q: %w", target, domain.ErrInvalidInput)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	ref.Path = strings.TrimPrefix(ref.Path, "/")
	return b.base.ResolveReference(ref).String(), nil
}

// Navigate opens the resolved URL in the default browser.
func (b *Browser) Navigate(ctx context.Context, target string) error {
	resolved, err := b.Resolve(target)
	if err != nil {
		return err
	}
	logger.Debug("navigator: opening %s", resolved)
	if err := b.open(ctx, resolved); err != nil {
		return fmt.Errorf("open %s: %w", resolved, err)
	}
	return nil
}

// openURL opens a URL using the system default handler.
// The browser outlives the request, so ctx does not bound the process.
func openURL(_ context.Context, target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
