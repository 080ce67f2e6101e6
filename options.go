package rstfmt

// Options controls the textual conventions of the serialized output.
// Per-depth slices are indexed by section nesting level; lookups past
// the end reuse the last element.
type Options struct {
	// TitleChars holds the underline/overline glyph per section depth.
	TitleChars []rune
	// TitleOverline selects, per depth, whether titles get an overline.
	TitleOverline []bool
	// TitlePrefix is emitted before a title (typically blank lines).
	TitlePrefix []string
	// TitleSuffix becomes the spacer after a title and its underline.
	TitleSuffix []string
	// IndentChar is the indentation character, space by default.
	IndentChar rune
	// BlockquoteIndent is the indentation width of block quotes.
	BlockquoteIndent int
	// WrapLength is the maximum output line width.
	WrapLength int
	// BulletChars holds the bullet glyph per list nesting depth.
	BulletChars []rune
}

// DefaultOptions returns the standard output conventions.
func DefaultOptions() Options {
	return Options{
		TitleChars:       []rune{'#', '*', '=', '-', '^', '"'},
		TitleOverline:    []bool{true, true, false, false, false, false},
		TitlePrefix:      []string{"", "\n", "", "", "", ""},
		TitleSuffix:      []string{"\n", "\n", "\n", "\n", "\n", "\n"},
		IndentChar:       ' ',
		BlockquoteIndent: 2,
		WrapLength:       79,
		BulletChars:      []rune{'*', '*', '*', '*', '*', '*'},
	}
}

// Option configures serialization behavior.
type Option func(*Options)

// WithWrapLength sets the maximum output line width.
func WithWrapLength(width int) Option {
	return func(o *Options) {
		if width > 0 {
			o.WrapLength = width
		}
	}
}

// WithIndentChar sets the indentation character.
func WithIndentChar(c rune) Option {
	return func(o *Options) {
		o.IndentChar = c
	}
}

// WithBlockquoteIndent sets the indentation width of block quotes.
func WithBlockquoteIndent(width int) Option {
	return func(o *Options) {
		if width > 0 {
			o.BlockquoteIndent = width
		}
	}
}

// WithTitleChars sets the per-depth title adornment glyphs.
func WithTitleChars(chars []rune) Option {
	return func(o *Options) {
		if len(chars) > 0 {
			o.TitleChars = chars
		}
	}
}

// WithBulletChars sets the per-depth bullet glyphs.
func WithBulletChars(chars []rune) Option {
	return func(o *Options) {
		if len(chars) > 0 {
			o.BulletChars = chars
		}
	}
}

// WithOptions replaces the whole option set at once.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}

func runeAt(s []rune, i int) rune {
	if len(s) == 0 {
		return ' '
	}
	if i >= len(s) {
		i = len(s) - 1
	}
	if i < 0 {
		i = 0
	}
	return s[i]
}

func boolAt(s []bool, i int) bool {
	if len(s) == 0 {
		return false
	}
	if i >= len(s) {
		i = len(s) - 1
	}
	if i < 0 {
		i = 0
	}
	return s[i]
}

func stringAt(s []string, i int) string {
	if len(s) == 0 {
		return ""
	}
	if i >= len(s) {
		i = len(s) - 1
	}
	if i < 0 {
		i = 0
	}
	return s[i]
}
