package chromedriver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/shared/textconv"
)

const (
	msgNotLaunched   = "Error: Browser not launched. Please launch the browser first using the launch_browser tool."
	msgNothingToStop = "Error: Browser not launched. No browser to close."
)

// Session is one launched browser.
type Session struct {
	ID        string
	Headless  bool
	StartedAt time.Time
	Browser   Browser
}

// Manager owns at most one browser session and renders every outcome as text.
type Manager struct {
	cfg    *Config
	launch Launcher

	mu      sync.Mutex
	session *Session
}

func NewManager(cfg *Config, launch Launcher) *Manager {
	if launch == nil {
		launch = LaunchRod
	}
	return &Manager{cfg: cfg.WithDefaults(), launch: launch}
}

// Session returns the current session, or nil.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Close stops the browser if one is running.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	err := m.session.Browser.Close()
	m.session = nil
	return err
}

func (m *Manager) withBrowser(fn func(b Browser) string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return msgNotLaunched
	}
	return fn(m.session.Browser)
}

// elementNoun names the element kind in not-found messages.
type elementNoun string

const (
	nounElement   elementNoun = "Element"
	nounForm      elementNoun = "Form element"
	nounSelect    elementNoun = "Select element"
	nounFileInput elementNoun = "File input element"
	nounIframe    elementNoun = "Iframe"
)

// withElement resolves a locator and runs fn on the match. failure is used for unexpected driver errors.
func (m *Manager) withElement(ctx context.Context, by, locator string, noun elementNoun, failure string, fn func(b Browser, el Element) string) string {
	return m.withBrowser(func(b Browser) string {
		loc, err := NewLocator(by, locator)
		if err != nil {
			return "Error: " + err.Error()
		}
		el, err := b.Find(ctx, loc)
		if errors.Is(err, ErrNoSuchElement) {
			return fmt.Sprintf("Error: %s with locator '%s' not found using method '%s'.", noun, locator, by)
		} else if err != nil {
			return fmt.Sprintf("%s: %v", failure, err)
		}
		return fn(b, el)
	})
}

func (m *Manager) Launch(ctx context.Context, url string, headless bool) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	log := zerolog.Ctx(ctx)
	if m.session != nil {
		log.Info().Str("session_id", m.session.ID).Msg("Closing existing browser before relaunch")
		if err := m.session.Browser.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close previous browser")
		}
		m.session = nil
	}
	browser, err := m.launch(ctx, LaunchOptions{
		URL:          url,
		Headless:     headless,
		ProfilePath:  m.cfg.ProfilePath,
		ChromiumPath: m.cfg.ChromiumPath,
	})
	if err != nil {
		return fmt.Sprintf("Failed to launch browser: %v", err)
	}
	m.session = &Session{ID: uuid.NewString(), Headless: headless, StartedAt: time.Now(), Browser: browser}
	log.Info().Str("session_id", m.session.ID).Bool("headless", headless).Msg("Launched browser")
	mode := "GUI"
	if headless {
		mode = "headless"
	}
	return fmt.Sprintf("Successfully launched browser with URL: %s in %s mode.", url, mode)
}

func (m *Manager) CloseBrowser(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return msgNothingToStop
	}
	id := m.session.ID
	err := m.session.Browser.Close()
	m.session = nil
	if err != nil {
		return fmt.Sprintf("Failed to close browser: %v", err)
	}
	zerolog.Ctx(ctx).Info().Str("session_id", id).Msg("Closed browser")
	return "Browser closed successfully."
}

func (m *Manager) Goto(ctx context.Context, url string) string {
	return m.withBrowser(func(b Browser) string {
		if err := b.Navigate(ctx, url); err != nil {
			return fmt.Sprintf("Failed to navigate to URL: %v", err)
		}
		return "Successfully navigated to URL: " + url
	})
}

func (m *Manager) PageSource(ctx context.Context, clean bool) string {
	return m.withBrowser(func(b Browser) string {
		source, err := b.HTML(ctx)
		if err != nil {
			return fmt.Sprintf("Failed to retrieve page source: %v", err)
		}
		if clean {
			if source, err = textconv.HTMLToMarkdown(source); err != nil {
				return fmt.Sprintf("Failed to retrieve page source: %v", err)
			}
		}
		return source
	})
}

// ExecuteJavaScript runs script as a function body, so it may use return.
func (m *Manager) ExecuteJavaScript(ctx context.Context, script string) string {
	return m.withBrowser(func(b Browser) string {
		result, err := b.Eval(ctx, "function() {\n"+script+"\n}")
		if err != nil {
			return fmt.Sprintf("Failed to execute JavaScript: %v", err)
		}
		return formatJSResult(result)
	})
}

func formatJSResult(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func screenshotName(filename string) string {
	name := filepath.Base(filename)
	switch name {
	case ".", "..", string(filepath.Separator):
		return DefaultScreenshot
	}
	return name
}

// Screenshot saves the current page under DownloadPath. The image is returned
// alongside the message only when it was written successfully.
func (m *Manager) Screenshot(ctx context.Context, filename string) (string, []byte) {
	var saved []byte
	msg := m.withBrowser(func(b Browser) string {
		if err := os.MkdirAll(m.cfg.DownloadPath, 0o755); err != nil {
			return fmt.Sprintf("Failed to take screenshot: %v", err)
		}
		path := filepath.Join(m.cfg.DownloadPath, screenshotName(filename))
		data, err := b.Screenshot(ctx)
		if err != nil {
			return fmt.Sprintf("Failed to take screenshot: %v", err)
		}
		if err = os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Sprintf("Failed to take screenshot: %v", err)
		}
		saved = data
		return "Screenshot saved successfully to: " + path
	})
	return msg, saved
}

func (m *Manager) ElementText(ctx context.Context, by, locator string) string {
	return m.withElement(ctx, by, locator, nounElement, "Failed to find element", func(_ Browser, el Element) string {
		text, err := el.Text()
		if err != nil {
			return fmt.Sprintf("Failed to find element: %v", err)
		}
		if text == "" {
			return fmt.Sprintf("Tool call is done. Element with locator '%s' found using method '%s', but it contains no text.", locator, by)
		}
		return text
	})
}

func (m *Manager) Click(ctx context.Context, by, locator string) string {
	return m.withElement(ctx, by, locator, nounElement, "Failed to click element", func(_ Browser, el Element) string {
		if err := el.Click(); err != nil {
			return fmt.Sprintf("Failed to click element: %v", err)
		}
		return fmt.Sprintf("Successfully clicked element with locator '%s' using method '%s'.", locator, by)
	})
}

func (m *Manager) Type(ctx context.Context, by, locator, text string) string {
	return m.withElement(ctx, by, locator, nounElement, "Failed to type into element", func(_ Browser, el Element) string {
		if err := el.Type(text); err != nil {
			return fmt.Sprintf("Failed to type into element: %v", err)
		}
		return fmt.Sprintf("Successfully typed text into element with locator '%s' using method '%s'.", locator, by)
	})
}

func (m *Manager) Clear(ctx context.Context, by, locator string) string {
	return m.withElement(ctx, by, locator, nounElement, "Failed to clear text from element", func(_ Browser, el Element) string {
		if err := el.Clear(); err != nil {
			return fmt.Sprintf("Failed to clear text from element: %v", err)
		}
		return fmt.Sprintf("Successfully cleared text from element with locator '%s' using method '%s'.", locator, by)
	})
}

func (m *Manager) Scroll(ctx context.Context, dx, dy int) string {
	return m.withBrowser(func(b Browser) string {
		if _, err := b.Eval(ctx, "function(x, y) { window.scrollBy(x, y); }", dx, dy); err != nil {
			return fmt.Sprintf("Failed to scroll the page: %v", err)
		}
		return fmt.Sprintf("Successfully scrolled the page by %d pixels in the x direction and %d pixels in the y direction.", dx, dy)
	})
}

func (m *Manager) Stats(ctx context.Context) string {
	return m.withBrowser(func(b Browser) string {
		stats, err := b.Stats(ctx)
		if err != nil {
			return fmt.Sprintf("Failed to retrieve browser stats: %v", err)
		}
		data, err := json.MarshalIndent(stats, "", "    ")
		if err != nil {
			return fmt.Sprintf("Failed to retrieve browser stats: %v", err)
		}
		return string(data)
	})
}

func (m *Manager) Attribute(ctx context.Context, by, locator, attribute string) string {
	return m.withElement(ctx, by, locator, nounElement, "Failed to get element attribute", func(_ Browser, el Element) string {
		value, err := el.Attribute(attribute)
		if err != nil {
			return fmt.Sprintf("Failed to get element attribute: %v", err)
		}
		if value == nil {
			return fmt.Sprintf("Error: Attribute '%s' not found on element with locator '%s' using method '%s'.", attribute, locator, by)
		}
		return *value
	})
}

type elementInfo struct {
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes"`
}

func (m *Manager) Elements(ctx context.Context, by, locator string) string {
	return m.withBrowser(func(b Browser) string {
		loc, err := NewLocator(by, locator)
		if err != nil {
			return "Error: " + err.Error()
		}
		found, err := b.FindAll(ctx, loc)
		if err != nil {
			return fmt.Sprintf("Failed to find elements: %v", err)
		}
		infos := make([]elementInfo, 0, len(found))
		for _, el := range found {
			text, err := el.Text()
			if err != nil {
				return fmt.Sprintf("Failed to find elements: %v", err)
			}
			attrs, err := el.Attributes()
			if err != nil {
				return fmt.Sprintf("Failed to find elements: %v", err)
			}
			infos = append(infos, elementInfo{Text: text, Attributes: attrs})
		}
		data, err := json.MarshalIndent(infos, "", "    ")
		if err != nil {
			return fmt.Sprintf("Failed to find elements: %v", err)
		}
		return string(data)
	})
}

func (m *Manager) Submit(ctx context.Context, by, locator string) string {
	return m.withElement(ctx, by, locator, nounForm, "Failed to submit form", func(_ Browser, el Element) string {
		if err := el.Submit(); err != nil {
			return fmt.Sprintf("Failed to submit form: %v", err)
		}
		return fmt.Sprintf("Successfully submitted form with locator '%s' using method '%s'.", locator, by)
	})
}

func (m *Manager) WaitFor(ctx context.Context, by, locator string, timeoutSecs int) string {
	return m.withBrowser(func(b Browser) string {
		loc, err := NewLocator(by, locator)
		if err != nil {
			return "Error: " + err.Error()
		}
		if err = b.WaitFor(ctx, loc, time.Duration(timeoutSecs)*time.Second); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("locator", locator).Msg("Wait for element ended without a match")
			return fmt.Sprintf("Timeout: Element with locator '%s' did not appear within %d seconds.", locator, timeoutSecs)
		}
		return fmt.Sprintf("Successfully waited for element with locator '%s' using method '%s' to be present within %d seconds.", locator, by, timeoutSecs)
	})
}

func (m *Manager) SelectOption(ctx context.Context, by, locator, value string) string {
	return m.withElement(ctx, by, locator, nounSelect, "Failed to select option", func(_ Browser, el Element) string {
		if err := el.SelectValue(value); err != nil {
			return fmt.Sprintf("Failed to select option: %v", err)
		}
		return fmt.Sprintf("Successfully selected option with value '%s' in select element with locator '%s' using method '%s'.", value, locator, by)
	})
}

func (m *Manager) UploadFile(ctx context.Context, by, locator, path string) string {
	return m.withElement(ctx, by, locator, nounFileInput, "Failed to upload file", func(_ Browser, el Element) string {
		if err := el.SetFiles([]string{path}); err != nil {
			return fmt.Sprintf("Failed to upload file: %v", err)
		}
		return fmt.Sprintf("Successfully uploaded file '%s' to element with locator '%s' using method '%s'.", path, locator, by)
	})
}

func (m *Manager) OpenTab(ctx context.Context, url string) string {
	return m.withBrowser(func(b Browser) string {
		if err := b.OpenTab(ctx, url); err != nil {
			return fmt.Sprintf("Failed to open a new tab: %v", err)
		}
		return "Successfully opened a new tab with URL: " + url
	})
}

func (m *Manager) SwitchTab(ctx context.Context, index int) string {
	return m.withBrowser(func(b Browser) string {
		count := b.TabCount()
		if index < 0 || index >= count {
			return fmt.Sprintf("Error: Tab index %d is out of bounds. There are %d tabs open (0-%d).", index, count, count-1)
		}
		if err := b.SwitchTab(ctx, index); err != nil {
			return fmt.Sprintf("Failed to switch to tab: %v", err)
		}
		return fmt.Sprintf("Successfully switched to tab with index: %d", index)
	})
}

func (m *Manager) CloseTab(ctx context.Context) string {
	return m.withBrowser(func(b Browser) string {
		if err := b.CloseTab(ctx); err != nil {
			return fmt.Sprintf("Failed to close current tab: %v", err)
		}
		return "Successfully closed current tab."
	})
}

func (m *Manager) SwitchToFrame(ctx context.Context, by, locator string) string {
	return m.withElement(ctx, by, locator, nounIframe, "Failed to switch to iframe", func(b Browser, el Element) string {
		if err := b.SwitchToFrame(ctx, el); err != nil {
			return fmt.Sprintf("Failed to switch to iframe: %v", err)
		}
		return fmt.Sprintf("Successfully switched to iframe with locator '%s' using method '%s'.", locator, by)
	})
}

func (m *Manager) CurrentTab() string {
	return m.withBrowser(func(b Browser) string {
		return fmt.Sprint(b.CurrentTab())
	})
}
