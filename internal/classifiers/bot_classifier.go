package classifiers

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"log-stats/internal/models"

	"github.com/mileusna/useragent"
)

// botURLPattern captures the first URL of a user agent, up to the closing ')' or ';'.
var botURLPattern = regexp.MustCompile(`(http\S+?)[);]`)

type BotClassifier interface {
	Classify(entry *models.LogEntry) models.Classification
}

type botClassifier struct {
	botIPs              map[string]struct{}
	userAgentPattern    *regexp.Regexp
	detectKnownCrawlers bool
}

type Option func(*botClassifier)

// WithKnownCrawlers also flags user agents that the useragent parser knows as bots.
// It is consulted after the signature pattern.
func WithKnownCrawlers() Option {
	return func(c *botClassifier) {
		c.detectKnownCrawlers = true
	}
}

func NewBotClassifier(botIPs map[string]struct{}, userAgentPattern string, opts ...Option) (BotClassifier, error) {
	pattern, err := regexp.Compile(userAgentPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid user agent pattern %q: %w", userAgentPattern, err)
	}
	if botIPs == nil {
		botIPs = make(map[string]struct{})
	}

	c := &botClassifier{
		botIPs:           botIPs,
		userAgentPattern: pattern,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify applies, in order: a URL in the user agent, the bot IP list, the signature pattern.
// Only the first rule yields a bot URL.
func (c *botClassifier) Classify(entry *models.LogEntry) models.Classification {
	if match := botURLPattern.FindStringSubmatch(entry.UserAgent); match != nil {
		return models.Classification{IsBot: true, BotURL: match[1]}
	}
	if _, ok := c.botIPs[entry.Host]; ok {
		return models.Classification{IsBot: true}
	}
	if c.userAgentPattern.MatchString(entry.UserAgent) {
		return models.Classification{IsBot: true}
	}
	if c.detectKnownCrawlers && entry.UserAgent != "" && useragent.Parse(entry.UserAgent).Bot {
		return models.Classification{IsBot: true}
	}
	return models.Classification{}
}

// LoadBotIPs reads one address per line. Blank lines and '#' comments are skipped.
func LoadBotIPs(r io.Reader) (map[string]struct{}, error) {
	ips := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ips[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bot ip list: %w", err)
	}
	return ips, nil
}
