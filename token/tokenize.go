package token

import "unicode/utf8"

type tokenOpts struct {
	startLine int
	spaces    bool
}

type TokenOpt func(*tokenOpts)

// StartLine sets the line number of the first fed code point, so that
// positions match the source file when the header lines are stripped
// before tokenizing.
func StartLine(n int) TokenOpt {
	return func(o *tokenOpts) { o.startLine = n }
}

// KeepSpaces retains separator tokens, which are otherwise filtered
// out before reaching the document builder.
func KeepSpaces() TokenOpt {
	return func(o *tokenOpts) { o.spaces = true }
}

// Tokenize runs the whole document body through a Tokenizer and
// returns the token stream with separator tokens filtered out.
func Tokenize(d []byte, opts ...TokenOpt) ([]Token, error) {
	opt := &tokenOpts{}
	for _, o := range opts {
		o(opt)
	}
	tk := NewTokenizer(opt.startLine)
	var toks []Token
	for i := 0; i < len(d); {
		r, size := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && size == 1 {
			// an ill-formed byte, as opposed to a document that
			// genuinely contains the replacement character
			return nil, NewTokenizeErr(ErrBadUTF8, tk.Pos())
		}
		i += size
		tok, err := tk.Feed(r)
		if err != nil {
			return nil, err
		}
		if tok != nil && (tok.Type != TSpace || opt.spaces) {
			toks = append(toks, *tok)
		}
	}
	tok, err := tk.Finish()
	if err != nil {
		return nil, err
	}
	if tok != nil && (tok.Type != TSpace || opt.spaces) {
		toks = append(toks, *tok)
	}
	return toks, nil
}
