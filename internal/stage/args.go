package stage

import (
	"strings"

	"github.com/boshu2/todo/internal/config"
)

// splitToken splits "key:value" at the first colon. Tokens without a colon,
// or with nothing before it, are positional.
func splitToken(tok string) (key, value string, keyed bool) {
	key, value, found := strings.Cut(tok, ":")
	if !found || key == "" {
		return "", tok, false
	}
	return key, value, true
}

// AddOptions are the recognized arguments of the add stage.
type AddOptions struct {
	// Project is a regular expression selecting the target project root.
	// Empty means the scan root.
	Project string

	Priority string
	ID       string
	Name     string
	User     string
	Scope    string
}

// ParseAddOptions reads add arguments. Recognized keys are project,
// priority, id, name, user and scope; any other token, keyed or not, is part
// of the free-text name. A name: value comes before positional words.
func ParseAddOptions(args []string, cfg *config.Config) AddOptions {
	opts := AddOptions{
		Priority: cfg.Priority,
		User:     cfg.User,
		Scope:    cfg.Scope,
	}

	var words []string
	for _, arg := range args {
		key, value, keyed := splitToken(arg)
		if !keyed {
			words = append(words, value)
			continue
		}
		switch key {
		case "project":
			opts.Project = value
		case "priority":
			opts.Priority = value
		case "id":
			opts.ID = value
		case "name":
			opts.Name = value
		case "user":
			opts.User = value
		case "scope":
			opts.Scope = value
		default:
			words = append(words, arg)
		}
	}

	opts.Name = joinWords(opts.Name, words)
	return opts
}

// CommentOptions are the recognized arguments of the comment stage.
type CommentOptions struct {
	User    string
	Message string
}

// ParseCommentOptions reads comment arguments: user:<name> overrides the
// configured user, everything else forms the message.
func ParseCommentOptions(args []string, cfg *config.Config) CommentOptions {
	opts := CommentOptions{User: cfg.User}

	var words []string
	for _, arg := range args {
		if key, value, keyed := splitToken(arg); keyed && key == "user" {
			opts.User = value
			continue
		}
		words = append(words, arg)
	}

	opts.Message = joinWords("", words)
	return opts
}

func joinWords(first string, words []string) string {
	parts := make([]string, 0, len(words)+1)
	if first != "" {
		parts = append(parts, first)
	}
	parts = append(parts, words...)
	return strings.Join(parts, " ")
}
