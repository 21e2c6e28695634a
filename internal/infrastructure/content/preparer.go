package content

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"LessonAnalyzer/internal/config"
	"LessonAnalyzer/internal/domain"
	"LessonAnalyzer/internal/ports"
)

const minDetectRunes = 20

var (
	spaceExpr = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankExpr = regexp.MustCompile(`\n{3,}`)

	// readability resolves relative links against this; the value never leaves the process.
	baseURL = &url.URL{Scheme: "https", Host: "content.local", Path: "/"}

	detectable = []lingua.Language{
		lingua.English, lingua.Spanish, lingua.French, lingua.German, lingua.Italian,
		lingua.Portuguese, lingua.Dutch, lingua.Polish, lingua.Russian, lingua.Ukrainian,
		lingua.Turkish, lingua.Chinese, lingua.Japanese, lingua.Korean, lingua.Arabic, lingua.Hindi,
	}
)

// Preparer reduces whole HTML documents to text and detects the content
// language. Text that merely contains tags is left as written.
type Preparer struct {
	stripHTML bool
	detector  lingua.LanguageDetector
	logger    *slog.Logger
}

var _ ports.ContentPreparer = (*Preparer)(nil)

// NewPreparer wires preparation steps according to configuration.
func NewPreparer(cfg config.ContentConfig, logger *slog.Logger) *Preparer {
	p := &Preparer{stripHTML: cfg.HTMLStripping(), logger: logger}
	if cfg.LanguageDetection() {
		p.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectable...).
			WithMinimumRelativeDistance(0.25).
			Build()
	}
	return p
}

// Prepare never fails; when a step cannot produce output the input passes through.
func (p *Preparer) Prepare(raw string) domain.ContentProfile {
	profile := domain.ContentProfile{Text: raw}
	if p == nil {
		return profile
	}

	if p.stripHTML && IsHTMLDocument(raw) {
		text, err := HTMLToText(raw)
		switch {
		case err != nil:
			p.debug("html cleanup failed", "error", err)
		case text == "":
			p.debug("html cleanup produced no text")
		default:
			profile.Text = text
			profile.FromHTML = true
		}
	}

	if p.detector != nil && utf8.RuneCountInString(profile.Text) >= minDetectRunes {
		if lang, ok := p.detector.DetectLanguageOf(profile.Text); ok {
			profile.Language = lang.String()
		}
	}

	p.debug("content prepared", "from_html", profile.FromHTML, "language", profile.Language, "runes", utf8.RuneCountInString(profile.Text))
	return profile
}

// IsHTMLDocument reports whether s is a complete HTML document rather than
// prose quoting some markup.
func IsHTMLDocument(s string) bool {
	head := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// HTMLToText isolates the main body with readability and flattens it to
// Markdown-like text. Without a readable article the whole document is used.
func HTMLToText(raw string) (string, error) {
	source := raw
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(raw), baseURL)
	if err == nil && strings.TrimSpace(article.Content) != "" {
		source = article.Content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script,style,noscript").Remove()

	var blocks []string
	doc.Find("h1,h2,h3,h4,h5,h6,p,li,pre,blockquote").Each(func(i int, s *goquery.Selection) {
		// nested blocks are emitted by their innermost match
		if s.Find("p,li,pre,blockquote").Length() > 0 {
			return
		}
		text := collapse(s.Text())
		if goquery.NodeName(s) == "pre" {
			text = strings.TrimSpace(s.Text())
		}
		if text == "" {
			return
		}
		switch tag := goquery.NodeName(s); tag {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			blocks = append(blocks, strings.Repeat("#", int(tag[1]-'0'))+" "+text)
		case "li":
			blocks = append(blocks, "- "+text)
		case "pre":
			blocks = append(blocks, "```\n"+text+"\n```")
		default:
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return collapse(doc.Text()), nil
	}
	return blankExpr.ReplaceAllString(strings.Join(blocks, "\n\n"), "\n\n"), nil
}

func collapse(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(spaceExpr.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, " ")
}

func (p *Preparer) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
