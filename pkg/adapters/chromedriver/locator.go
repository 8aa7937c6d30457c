package chromedriver

import (
	"fmt"
	"strings"
)

// Strategy is how a locator string is interpreted.
type Strategy string

const (
	ByID              Strategy = "id"
	ByXPath           Strategy = "xpath"
	ByClassName       Strategy = "class_name"
	ByTagName         Strategy = "tag_name"
	ByName            Strategy = "name"
	ByCSSSelector     Strategy = "css_selector"
	ByLinkText        Strategy = "link_text"
	ByPartialLinkText Strategy = "partial_link_text"
)

// Strategies lists every supported strategy in documentation order.
var Strategies = []Strategy{ByID, ByXPath, ByClassName, ByTagName, ByName, ByCSSSelector, ByLinkText, ByPartialLinkText}

func strategyNames() []string {
	names := make([]string, len(Strategies))
	for i, s := range Strategies {
		names[i] = string(s)
	}
	return names
}

// InvalidStrategyError reports an unknown "by" value.
type InvalidStrategyError struct {
	By string
}

func (e *InvalidStrategyError) Error() string {
	return fmt.Sprintf("Invalid 'by' method: %s. Supported methods are: %s", e.By, strings.Join(strategyNames(), ", "))
}

// Locator identifies elements on a page. Construct it with NewLocator.
type Locator struct {
	By    Strategy
	Value string
}

func NewLocator(by, value string) (Locator, error) {
	for _, s := range Strategies {
		if string(s) == by {
			return Locator{By: s, Value: value}, nil
		}
	}
	return Locator{}, &InvalidStrategyError{By: by}
}

// Selector translates the locator into a CSS selector, or an XPath expression when xpath is true.
func (l Locator) Selector() (expr string, xpath bool) {
	switch l.By {
	case ByID:
		return `[id="` + cssString(l.Value) + `"]`, false
	case ByClassName:
		return `[class~="` + cssString(l.Value) + `"]`, false
	case ByTagName:
		return l.Value, false
	case ByName:
		return `[name="` + cssString(l.Value) + `"]`, false
	case ByCSSSelector:
		return l.Value, false
	case ByXPath:
		return l.Value, true
	case ByLinkText:
		return "//a[normalize-space(.)=" + xpathLiteral(strings.TrimSpace(l.Value)) + "]", true
	case ByPartialLinkText:
		return "//a[contains(., " + xpathLiteral(l.Value) + ")]", true
	}
	return l.Value, false
}

func cssString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
