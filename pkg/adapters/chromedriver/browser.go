package chromedriver

import (
	"context"
	"errors"
	"time"
)

// ErrNoSuchElement is returned when a locator matches nothing.
var ErrNoSuchElement = errors.New("no such element")

// LaunchOptions configures a new browser process.
type LaunchOptions struct {
	URL          string
	Headless     bool
	ProfilePath  string
	ChromiumPath string
}

// Launcher starts a browser and opens the first tab.
type Launcher func(ctx context.Context, opts LaunchOptions) (Browser, error)

// Browser is a running browser with an ordered set of tabs and one active tab.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	HTML(ctx context.Context) (string, error)
	// Eval calls a JavaScript function definition with args and returns its JSON-decoded result.
	Eval(ctx context.Context, fn string, args ...any) (any, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Find(ctx context.Context, loc Locator) (Element, error)
	FindAll(ctx context.Context, loc Locator) ([]Element, error)
	WaitFor(ctx context.Context, loc Locator, timeout time.Duration) error
	Stats(ctx context.Context) (*Stats, error)

	OpenTab(ctx context.Context, url string) error
	SwitchTab(ctx context.Context, index int) error
	CloseTab(ctx context.Context) error
	TabCount() int
	CurrentTab() int
	SwitchToFrame(ctx context.Context, frame Element) error

	Close() error
}

// Element is a handle to a DOM node.
type Element interface {
	Text() (string, error)
	// Attribute returns nil when the attribute is absent.
	Attribute(name string) (*string, error)
	Attributes() (map[string]string, error)
	Click() error
	Type(text string) error
	Clear() error
	Submit() error
	SelectValue(value string) error
	SetFiles(paths []string) error
}

// Stats describes the state of the active tab.
type Stats struct {
	ScrollX          float64           `json:"scroll_x"`
	ScrollY          float64           `json:"scroll_y"`
	WindowWidth      float64           `json:"window_width"`
	WindowHeight     float64           `json:"window_height"`
	DocumentWidth    float64           `json:"document_width"`
	DocumentHeight   float64           `json:"document_height"`
	Title            string            `json:"title"`
	URL              string            `json:"url"`
	Cookies          []Cookie          `json:"cookies"`
	LocalStorage     map[string]string `json:"local_storage"`
	SessionStorage   map[string]string `json:"session_storage"`
	NumberOfFrames   int               `json:"number_of_frames"`
	DevicePixelRatio float64           `json:"device_pixel_ratio"`
	UserAgent        string            `json:"user_agent"`
}

type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expiry,omitempty"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite,omitempty"`
}
