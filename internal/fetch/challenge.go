package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// MaxChallengeRetries 反爬挑战最多跟随的次数
const MaxChallengeRetries = 5

// 挑战页都很短，真实文章页不会低于这个长度
const challengeBodyLimit = 1024

var ErrChallenge = errors.New("anti-bot challenge not solved")

var (
	reCookieChallenge   = regexp.MustCompile(`document\.cookie\s*=\s*"([^"]+)"`)
	reRedirectChallenge = regexp.MustCompile(`window\.location(?:\.href)?\s*=\s*["']([^"']+)["']`)
)

type ChallengeKind int

const (
	CookieChallenge ChallengeKind = iota + 1
	RedirectChallenge
)

type Challenge struct {
	Kind        ChallengeKind
	CookieName  string
	CookieValue string
	Location    string
}

// DetectChallenge 识别 JS 挑战页：
// document.cookie="k=v; path=/"; window.location.reload() 或 window.location.href="..."
func DetectChallenge(body string) (Challenge, bool) {
	short := len(strings.TrimSpace(body)) < challengeBodyLimit
	if !short && !strings.Contains(body, "Attention Required") {
		return Challenge{}, false
	}

	if m := reCookieChallenge.FindStringSubmatch(body); m != nil {
		pair, _, _ := strings.Cut(m[1], ";")
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if ok && name != "" {
			return Challenge{
				Kind:        CookieChallenge,
				CookieName:  name,
				CookieValue: strings.TrimSpace(value),
			}, true
		}
	}

	if m := reRedirectChallenge.FindStringSubmatch(body); m != nil {
		loc, err := url.PathUnescape(m[1])
		if err != nil {
			loc = m[1]
		}
		return Challenge{Kind: RedirectChallenge, Location: loc}, true
	}
	return Challenge{}, false
}

// GetSolvingChallenges 同 Get，但遇到挑战页时设置 cookie 或跟随跳转后重试，
// 最多 MaxChallengeRetries 次。返回值中的 int 为重试次数。
func (c *Client) GetSolvingChallenges(ctx context.Context, rawURL string) (string, int, error) {
	target := rawURL

	body, retries, err := Retry(ctx, MaxChallengeRetries,
		func(ctx context.Context) (string, error) {
			return c.Get(ctx, target)
		},
		func(_ context.Context, body string) (bool, error) {
			ch, ok := DetectChallenge(body)
			if !ok {
				return false, nil
			}
			switch ch.Kind {
			case CookieChallenge:
				if err := c.SetCookie(target, ch.CookieName, ch.CookieValue); err != nil {
					return false, err
				}
			case RedirectChallenge:
				next, err := resolveLocation(target, ch.Location)
				if err != nil {
					return false, err
				}
				target = next
			}
			return true, nil
		},
	)
	if errors.Is(err, ErrRetriesExhausted) {
		return "", retries, fmt.Errorf("fetch: %s: %w after %d retries", rawURL, ErrChallenge, retries)
	}
	return body, retries, err
}

func resolveLocation(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("fetch: parse %q: %w", current, err)
	}
	ref, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return "", fmt.Errorf("fetch: parse redirect %q: %w", location, err)
	}
	return base.ResolveReference(ref).String(), nil
}
