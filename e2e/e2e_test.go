//go:build e2e

package e2e

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

const (
	baseURL    = "http://localhost:18080"
	binaryPath = "/tmp/greet-e2e"
	pageFile   = "static/login.html"
)

var (
	serverCmd *exec.Cmd
	pw        *playwright.Playwright
	browser   playwright.Browser // single browser instance, reused across tests
)

// TestMain sets up and tears down the test server and playwright
func TestMain(m *testing.M) {
	// build the binary
	build := exec.Command("go", "build", "-o", binaryPath, "./app")
	build.Dir = ".."
	if out, err := build.CombinedOutput(); err != nil {
		log.Fatalf("failed to build: %v\n%s", err, out)
	}

	// start the server, short ttl to check expiry
	serverCmd = exec.Command(binaryPath,
		"--dbg",
		"--listen=:18080",
		"--page="+pageFile,
		"--session.ttl=3s",
		"--session.cleanup=1s",
	)
	serverCmd.Dir = ".."
	if err := serverCmd.Start(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}

	// wait for server to be ready
	if err := waitForServer(baseURL+"/", 30*time.Second); err != nil {
		_ = serverCmd.Process.Kill()
		log.Fatalf("server not ready: %v", err)
	}

	// install playwright browsers if needed
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		_ = serverCmd.Process.Kill()
		log.Fatalf("failed to install playwright: %v", err)
	}

	// start playwright
	var err error
	pw, err = playwright.Run()
	if err != nil {
		_ = serverCmd.Process.Kill()
		log.Fatalf("failed to start playwright: %v", err)
	}

	// launch browser once (reused across all tests via contexts)
	headless := os.Getenv("E2E_HEADLESS") != "false"
	var slowMo float64
	if !headless {
		slowMo = 50 // slow down visible browser for easier observation
	}
	browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		SlowMo:   playwright.Float(slowMo),
	})
	if err != nil {
		_ = pw.Stop()
		_ = serverCmd.Process.Kill()
		log.Fatalf("failed to launch browser: %v", err)
	}

	// run tests
	code := m.Run()

	// cleanup
	_ = browser.Close()
	_ = pw.Stop()
	if serverCmd.Process != nil {
		_ = serverCmd.Process.Kill()
	}
	_ = os.Remove(binaryPath)

	os.Exit(code)
}

func waitForServer(serverURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(serverURL) //nolint:gosec // test code with controlled URL
		if err == nil && resp.StatusCode == http.StatusOK {
			_ = resp.Body.Close()
			return nil
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

// newPage creates a new browser page with isolated context
func newPage(t *testing.T) playwright.Page {
	t.Helper()
	ctx, err := browser.NewContext() // new context per test (isolated cookies/storage)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })

	page, err := ctx.NewPage()
	require.NoError(t, err)
	return page
}

// login submits the login form with the given name and waits for the redirect to the root page
func login(t *testing.T, page playwright.Page, name string) {
	t.Helper()
	_, err := page.Goto(baseURL + "/")
	require.NoError(t, err)

	require.NoError(t, page.Locator("#name").Fill(name))
	require.NoError(t, page.Locator("#login").Click())
	require.NoError(t, page.WaitForURL(baseURL+"/"))
}

// bodyText returns the visible text of the page body
func bodyText(t *testing.T, page playwright.Page) string {
	t.Helper()
	text, err := page.Locator("body").TextContent()
	require.NoError(t, err)
	return text
}
