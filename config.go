package rstfmt

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// fileOptions is the TOML form of Options. Glyphs are one-character
// strings; title spacing is given as blank-line counts per depth.
type fileOptions struct {
	TitleChars            []string `toml:"title_chars"`
	TitleOverline         []bool   `toml:"title_overline"`
	TitlePrefixBlankLines []int    `toml:"title_prefix_blank_lines"`
	TitleSuffixBlankLines []int    `toml:"title_suffix_blank_lines"`
	IndentChar            string   `toml:"indent_char"`
	BlockquoteIndent      int      `toml:"blockquote_indent"`
	WrapLength            int      `toml:"wrap_length"`
	BulletChars           []string `toml:"bullet_chars"`
}

// LoadOptions reads a TOML options file, applying its values over the
// defaults.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultOptions(), err
	}
	return ParseOptions(string(data))
}

// ParseOptions parses TOML option data, applying its values over the
// defaults.
func ParseOptions(data string) (Options, error) {
	opts := DefaultOptions()
	var f fileOptions
	if _, err := toml.Decode(data, &f); err != nil {
		return opts, fmt.Errorf("parse options: %w", err)
	}
	if len(f.TitleChars) > 0 {
		chars, err := glyphList("title_chars", f.TitleChars)
		if err != nil {
			return opts, err
		}
		opts.TitleChars = chars
	}
	if len(f.TitleOverline) > 0 {
		opts.TitleOverline = f.TitleOverline
	}
	if len(f.TitlePrefixBlankLines) > 0 {
		opts.TitlePrefix = blankLines(f.TitlePrefixBlankLines)
	}
	if len(f.TitleSuffixBlankLines) > 0 {
		opts.TitleSuffix = blankLines(f.TitleSuffixBlankLines)
	}
	if f.IndentChar != "" {
		r, err := glyph("indent_char", f.IndentChar)
		if err != nil {
			return opts, err
		}
		opts.IndentChar = r
	}
	if f.BlockquoteIndent > 0 {
		opts.BlockquoteIndent = f.BlockquoteIndent
	}
	if f.WrapLength > 0 {
		opts.WrapLength = f.WrapLength
	}
	if len(f.BulletChars) > 0 {
		chars, err := glyphList("bullet_chars", f.BulletChars)
		if err != nil {
			return opts, err
		}
		opts.BulletChars = chars
	}
	return opts, nil
}

func glyph(key, s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return 0, fmt.Errorf("parse options: %s: want a single character, got %q", key, s)
	}
	return r, nil
}

func glyphList(key string, values []string) ([]rune, error) {
	out := make([]rune, 0, len(values))
	for _, v := range values {
		r, err := glyph(key, v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func blankLines(counts []int) []string {
	out := make([]string, 0, len(counts))
	for _, n := range counts {
		if n < 0 {
			n = 0
		}
		out = append(out, strings.Repeat("\n", n))
	}
	return out
}
