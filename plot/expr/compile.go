package expr

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// MaxSourceLen bounds the expression text accepted by Compile.
const MaxSourceLen = 240

// Expr is a compiled expression of the single variable x.
type Expr struct {
	src  string
	root node
}

// Compile parses src and resolves it against the builtin functions and
// constants.
func Compile(src string) (*Expr, error) {
	src = strings.TrimSpace(src)
	if len(src) > MaxSourceLen {
		return nil, fmt.Errorf("%w: expression longer than %d characters", ErrParse, MaxSourceLen)
	}
	n, err := parse(src)
	if err != nil {
		return nil, err
	}
	root, err := resolve(n)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, root: root}, nil
}

// Eval evaluates the expression at x. A non-nil error means the expression is
// undefined at x; infinite results are returned as values.
func (e *Expr) Eval(x float64) (float64, error) {
	if e == nil || e.root == nil {
		return 0, fmt.Errorf("%w: empty expression", ErrEval)
	}
	return e.root.Eval(&env{x: x})
}

// Source returns the trimmed text the expression was compiled from.
func (e *Expr) Source() string {
	if e == nil {
		return ""
	}
	return e.src
}

// String returns the fully parenthesized form of the compiled tree.
func (e *Expr) String() string {
	if e == nil || e.root == nil {
		return ""
	}
	return e.root.String()
}

// Constant reports whether the expression does not depend on x.
func (e *Expr) Constant() bool {
	if e == nil {
		return true
	}
	_, ok := e.root.(nodeNumber)
	return ok
}

// Compiler memoizes compiled expressions by source text.
type Compiler struct {
	c *cache.Cache
}

const (
	defaultCacheTTL     = 10 * time.Minute
	defaultCacheCleanup = 20 * time.Minute
)

// NewCompiler returns a Compiler whose entries expire after ttl; a ttl of 0
// selects the default.
func NewCompiler(ttl time.Duration) *Compiler {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Compiler{c: cache.New(ttl, defaultCacheCleanup)}
}

// Compile returns the cached *Expr for src, compiling it on a miss. Errors are
// not cached.
func (c *Compiler) Compile(src string) (*Expr, error) {
	key := normalize(src)
	if v, ok := c.c.Get(key); ok {
		if e, ok := v.(*Expr); ok {
			return e, nil
		}
	}
	e, err := Compile(src)
	if err != nil {
		return nil, err
	}
	c.c.SetDefault(key, e)
	return e, nil
}

// Len returns the number of cached expressions.
func (c *Compiler) Len() int { return c.c.ItemCount() }

func normalize(src string) string {
	return strings.Join(strings.Fields(src), " ")
}
