package chromedriver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// LaunchRod starts Chromium over the DevTools protocol with a persistent profile.
// The process outlives ctx; it is stopped by Close.
func LaunchRod(ctx context.Context, opts LaunchOptions) (Browser, error) {
	l := launcher.New().UserDataDir(opts.ProfilePath).Headless(opts.Headless)
	if opts.ChromiumPath != "" {
		l = l.Bin(opts.ChromiumPath)
	} else if bin, ok := launcher.LookPath(); ok {
		l = l.Bin(bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err = browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to chromium: %w", err)
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: opts.URL})
	if err != nil {
		_ = browser.Close()
		return nil, err
	}
	if err = page.Context(ctx).WaitLoad(); err != nil {
		_ = browser.Close()
		return nil, err
	}
	return &rodBrowser{browser: browser, tabs: []*rod.Page{page}}, nil
}

type rodBrowser struct {
	browser *rod.Browser
	tabs    []*rod.Page
	active  int
	// frame is the iframe document that element lookups target, if any.
	frame *rod.Page
}

func (b *rodBrowser) page(ctx context.Context) *rod.Page {
	if b.frame != nil {
		return b.frame.Context(ctx)
	}
	return b.tabs[b.active].Context(ctx)
}

func (b *rodBrowser) Navigate(ctx context.Context, url string) error {
	b.frame = nil
	page := b.page(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

func (b *rodBrowser) HTML(ctx context.Context) (string, error) {
	return b.page(ctx).HTML()
}

func (b *rodBrowser) Eval(ctx context.Context, fn string, args ...any) (any, error) {
	res, err := b.page(ctx).Evaluate(&rod.EvalOptions{
		JS:           fn,
		JSArgs:       args,
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return nil, err
	}
	return res.Value.Val(), nil
}

func (b *rodBrowser) Screenshot(ctx context.Context) ([]byte, error) {
	return b.page(ctx).Screenshot(false, nil)
}

func (b *rodBrowser) Find(ctx context.Context, loc Locator) (Element, error) {
	expr, xpath := loc.Selector()
	var has bool
	var el *rod.Element
	var err error
	if xpath {
		has, el, err = b.page(ctx).HasX(expr)
	} else {
		has, el, err = b.page(ctx).Has(expr)
	}
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrNoSuchElement
	}
	return &rodElement{el: el}, nil
}

func (b *rodBrowser) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	expr, xpath := loc.Selector()
	var found rod.Elements
	var err error
	if xpath {
		found, err = b.page(ctx).ElementsX(expr)
	} else {
		found, err = b.page(ctx).Elements(expr)
	}
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(found))
	for i, el := range found {
		out[i] = &rodElement{el: el}
	}
	return out, nil
}

func (b *rodBrowser) WaitFor(ctx context.Context, loc Locator, timeout time.Duration) error {
	expr, xpath := loc.Selector()
	page := b.page(ctx).Timeout(timeout)
	var err error
	if xpath {
		_, err = page.ElementX(expr)
	} else {
		_, err = page.Element(expr)
	}
	return err
}

const statsScript = `() => {
	const dump = (store) => {
		const items = {};
		try {
			for (let i = 0; i < store.length; i++) {
				const key = store.key(i);
				items[key] = store.getItem(key);
			}
		} catch (e) {}
		return items;
	};
	return {
		scroll_x: window.pageXOffset,
		scroll_y: window.pageYOffset,
		window_width: window.innerWidth,
		window_height: window.innerHeight,
		document_width: document.documentElement.scrollWidth,
		document_height: document.documentElement.scrollHeight,
		title: document.title,
		url: location.href,
		local_storage: dump(window.localStorage),
		session_storage: dump(window.sessionStorage),
		number_of_frames: document.getElementsByTagName('iframe').length,
		device_pixel_ratio: window.devicePixelRatio,
		user_agent: navigator.userAgent,
	};
}`

func (b *rodBrowser) Stats(ctx context.Context) (*Stats, error) {
	page := b.page(ctx)
	res, err := page.Evaluate(&rod.EvalOptions{JS: statsScript, ByValue: true})
	if err != nil {
		return nil, err
	}
	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var stats Stats
	if err = json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	cookies, err := page.Cookies(nil)
	if err != nil {
		return nil, err
	}
	stats.Cookies = make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		stats.Cookies = append(stats.Cookies, Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  float64(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}
	return &stats, nil
}

func (b *rodBrowser) OpenTab(ctx context.Context, url string) error {
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return err
	}
	b.tabs = append(b.tabs, page)
	return b.SwitchTab(ctx, len(b.tabs)-1)
}

func (b *rodBrowser) SwitchTab(ctx context.Context, index int) error {
	if index < 0 || index >= len(b.tabs) {
		return fmt.Errorf("tab index %d out of range", index)
	}
	if _, err := b.tabs[index].Context(ctx).Activate(); err != nil {
		return err
	}
	b.active = index
	b.frame = nil
	return nil
}

func (b *rodBrowser) CloseTab(ctx context.Context) error {
	if len(b.tabs) == 1 {
		return errors.New("cannot close the last open tab, use close_browser instead")
	}
	if err := b.tabs[b.active].Context(ctx).Close(); err != nil {
		return err
	}
	b.tabs = append(b.tabs[:b.active], b.tabs[b.active+1:]...)
	return b.SwitchTab(ctx, 0)
}

func (b *rodBrowser) TabCount() int {
	return len(b.tabs)
}

func (b *rodBrowser) CurrentTab() int {
	return b.active
}

func (b *rodBrowser) SwitchToFrame(ctx context.Context, frame Element) error {
	el, ok := frame.(*rodElement)
	if !ok {
		return fmt.Errorf("unexpected element type %T", frame)
	}
	page, err := el.el.Context(ctx).Frame()
	if err != nil {
		return err
	}
	b.frame = page
	return nil
}

func (b *rodBrowser) Close() error {
	return b.browser.Close()
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Attribute(name string) (*string, error) {
	return e.el.Attribute(name)
}

func (e *rodElement) Attributes() (map[string]string, error) {
	res, err := e.el.Eval(`function() {
		const items = {};
		for (const attr of this.attributes) {
			items[attr.name] = attr.value;
		}
		return items;
	}`)
	if err != nil {
		return nil, err
	}
	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return nil, err
	}
	attrs := map[string]string{}
	return attrs, json.Unmarshal(raw, &attrs)
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Type(text string) error {
	return e.el.Input(text)
}

func (e *rodElement) Clear() error {
	if err := e.el.SelectAllText(); err != nil {
		return err
	}
	return e.el.Input("")
}

func (e *rodElement) Submit() error {
	_, err := e.el.Eval(`function() {
		const form = this.form || this;
		if (typeof form.requestSubmit === 'function') {
			form.requestSubmit();
		} else {
			form.submit();
		}
	}`)
	return err
}

func (e *rodElement) SelectValue(value string) error {
	res, err := e.el.Eval(`function(value) {
		const option = Array.from(this.options || []).find((o) => o.value === value);
		if (!option) {
			return false;
		}
		this.value = value;
		this.dispatchEvent(new Event('input', { bubbles: true }));
		this.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	}`, value)
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		return fmt.Errorf("cannot locate option with value: %s", value)
	}
	return nil
}

func (e *rodElement) SetFiles(paths []string) error {
	return e.el.SetFiles(paths)
}
